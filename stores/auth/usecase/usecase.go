package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/ethereum"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
)

const tokenTtl = 24 * time.Hour

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	account      account.Usecase
}

func New(jwtSecret, signatureMsg string, account account.Usecase) domain.AuthUsecase {
	return &impl{
		jwtSecret:    []byte(jwtSecret),
		signatureMsg: signatureMsg,
		account:      account,
	}
}

func (im *impl) SignToken(ctx bCtx.Ctx, address domain.Address) (string, error) {
	if _, err := im.account.GetOrCreate(ctx, address); err != nil {
		return "", err
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(ctx bCtx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrInvalidSignature
}

func (im *impl) ValidateSignature(ctx bCtx.Ctx, address domain.Address, signature string) error {
	a, err := im.account.Get(ctx, address)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf(im.signatureMsg, a.Nonce)
	valid, err := ethereum.ValidateMsgSignature([]byte(msg), signature, string(address))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("ethereum.ValidateMsgSignature failed")
		return err
	}
	if !valid {
		return domain.ErrInvalidSignature
	}

	// a nonce signs in exactly once
	if _, err := im.account.UpdateNonce(ctx, address); err != nil {
		return err
	}
	return nil
}
