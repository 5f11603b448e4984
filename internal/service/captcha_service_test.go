package service

import (
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"

	"github.com/mojocn/base64Captcha"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptchaDisabledByDefault(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{}, nil)
	assert.False(t, svc.Enabled())
	assert.False(t, svc.Required(constants.CaptchaSceneLogin))
	assert.NoError(t, svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}))

	_, err := svc.GenerateImageChallenge()
	assert.ErrorIs(t, err, ErrCaptchaDisabled)
}

func TestCaptchaImageVerifyFlow(t *testing.T) {
	store := base64Captcha.NewMemoryStore(100, time.Minute)
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "IMAGE",
		Scenes:   config.CaptchaSceneConfig{Login: true},
	}, store)
	require.True(t, svc.Required(constants.CaptchaSceneLogin))
	assert.False(t, svc.Required(constants.CaptchaSceneRegister))

	challenge, err := svc.GenerateImageChallenge()
	require.NoError(t, err)
	require.NotEmpty(t, challenge.CaptchaID)
	assert.Contains(t, challenge.ImageBase64, "data:image/png;base64,")

	assert.ErrorIs(t, svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}), ErrCaptchaRequired)

	answer := store.Get(challenge.CaptchaID, false)
	require.NotEmpty(t, answer)
	payload := CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}
	require.NoError(t, svc.Verify(constants.CaptchaSceneLogin, payload))
	assert.ErrorIs(t, svc.Verify(constants.CaptchaSceneLogin, payload), ErrCaptchaInvalid, "a challenge is single use")
}
