package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var uuidToString = copier.TypeConverter{
	SrcType: uuid.UUID{},
	DstType: copier.String,
	Fn: func(src any) (any, error) {
		return src.(uuid.UUID).String(), nil
	},
}
