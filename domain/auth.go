package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/pixeldonor/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
	// ValidateSignature checks a personal-sign signature over the signing
	// message built from the account's current nonce
	ValidateSignature(ctx ctx.Ctx, address Address, signature string) error
}
