package service

import (
	"context"
	"errors"
	"testing"

	"kelvi_tracker/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	t.Run("正常系: 差出人と宛先を設定して送る", func(t *testing.T) {
		fake := &fakeSES{}
		m := &SESMailer{client: fake, from: "noreply@kelvi.ai"}

		require.NoError(t, m.Send(context.Background(), "asha@example.com", "Hello", "Body"))
		assert.Equal(t, "noreply@kelvi.ai", aws.ToString(fake.input.FromEmailAddress))
		assert.Equal(t, []string{"asha@example.com"}, fake.input.Destination.ToAddresses)
		assert.Equal(t, "Hello", aws.ToString(fake.input.Content.Simple.Subject.Data))
		assert.Equal(t, "Body", aws.ToString(fake.input.Content.Simple.Body.Text.Data))
	})

	t.Run("異常系: SES のエラーをそのまま返す", func(t *testing.T) {
		m := &SESMailer{client: &fakeSES{err: errors.New("throttled")}, from: "noreply@kelvi.ai"}
		assert.EqualError(t, m.Send(context.Background(), "asha@example.com", "Hello", "Body"), "throttled")
	})
}

func TestNewMailer(t *testing.T) {
	ctx := context.Background()

	m, err := NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: "log"}})
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)
	assert.NoError(t, m.Send(ctx, "a@example.com", "s", "b"))

	m, err = NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: "smtp"}, SMTP: config.SMTPConfig{Host: "localhost", Port: 1025}})
	require.NoError(t, err)
	assert.IsType(t, &SmtpMailer{}, m)

	m, err = NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: "carrier-pigeon"}})
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	_, err = NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: "ses"}, SES: config.SESConfig{Region: "ap-south-1", AuthType: "static_credentials"}})
	assert.Error(t, err)
}

func TestLoadPrompts(t *testing.T) {
	ps, err := loadPrompts(promptsYAML)
	require.NoError(t, err)
	assert.NotEmpty(t, ps.Doubt.System)
	assert.NotEmpty(t, ps.QuestionPaper.System)

	_, err = loadPrompts([]byte("doubt:\n  user: \"{{.Grade\"\n"))
	assert.Error(t, err)
}

func TestToDataURL(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"正常系: PNG の base64", "iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo=", false},
		{"正常系: data URL はそのまま", "data:image/webp;base64,UklGRg==", "data:image/webp;base64,UklGRg==", false},
		{"異常系: PDF", "JVBERi0xLjQK", "", true},
		{"異常系: base64 ではない", "not base64!!", "", true},
		{"異常系: 許可されていない data URL", "data:text/plain;base64,aGk=", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toDataURL(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
