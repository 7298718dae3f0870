package usecase

import (
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/pkg/errs"
	"telescope-scheduler/internal/pkg/jwt"
)

var ErrUnknownTokenRole = errs.New("token carries an unknown role")

// TokenValidator turns a bearer token into the actor the core trusts.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Actor{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Actor{}, errs.Mark(err, ErrUnknownTokenRole)
	}

	return user.Actor{UserID: claims.UserID, Role: role}, nil
}
