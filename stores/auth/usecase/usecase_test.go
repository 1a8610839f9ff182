package usecase_test

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	mAccount "github.com/pixeldonor/goapi/domain/account/mocks"
	"github.com/pixeldonor/goapi/stores/auth/usecase"
)

const signatureMsg = "sign in with nonce: %d"

func TestSignAndParseToken(t *testing.T) {
	req := require.New(t)
	mockAccountUC := &mAccount.Usecase{}

	mockAccountUC.On("GetOrCreate", mock.Anything, domain.Address("my-address")).Return(&account.Account{Address: "my-address"}, nil)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signatureMsg, mockAccountUC)
	tkn, err := u.SignToken(ctx, "my-address")
	req.NoError(err)
	req.NotEmpty(tkn)
	ads, err := u.ParseToken(ctx, tkn)
	req.NoError(err)
	req.Equal("my-address", ads)
}

func TestParseTokenWrongSecret(t *testing.T) {
	req := require.New(t)
	mockAccountUC := &mAccount.Usecase{}

	mockAccountUC.On("GetOrCreate", mock.Anything, mock.Anything).Return(&account.Account{Address: "my-address"}, nil)

	ctx := ctx.Background()
	tkn, err := usecase.New("jwt-secret", signatureMsg, mockAccountUC).SignToken(ctx, "my-address")
	req.NoError(err)

	_, err = usecase.New("other-secret", signatureMsg, mockAccountUC).ParseToken(ctx, tkn)
	req.Error(err)
}

func TestValidateSignature(t *testing.T) {
	req := require.New(t)

	key, err := crypto.GenerateKey()
	req.NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	const nonce = int32(1234567)
	msg := fmt.Sprintf(signatureMsg, nonce)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	req.NoError(err)
	sig[crypto.RecoveryIDOffset] += 27

	mockAccountUC := &mAccount.Usecase{}
	mockAccountUC.On("Get", mock.Anything, address).Return(&account.Account{Address: address, Nonce: nonce}, nil)
	mockAccountUC.On("UpdateNonce", mock.Anything, address).Return(int32(7654321), nil)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signatureMsg, mockAccountUC)
	req.NoError(u.ValidateSignature(ctx, address, hexutil.Encode(sig)))

	// the signed-in nonce must be rotated so the signature is single use
	mockAccountUC.AssertCalled(t, "UpdateNonce", mock.Anything, address)
}

func TestValidateSignatureWrongNonce(t *testing.T) {
	req := require.New(t)

	key, err := crypto.GenerateKey()
	req.NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	msg := fmt.Sprintf(signatureMsg, int32(1111111))
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	req.NoError(err)
	sig[crypto.RecoveryIDOffset] += 27

	mockAccountUC := &mAccount.Usecase{}
	mockAccountUC.On("Get", mock.Anything, address).Return(&account.Account{Address: address, Nonce: 2222222}, nil)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signatureMsg, mockAccountUC)
	err = u.ValidateSignature(ctx, address, hexutil.Encode(sig))
	req.ErrorIs(err, domain.ErrInvalidSignature)
	mockAccountUC.AssertNotCalled(t, "UpdateNonce", mock.Anything, mock.Anything)
}
