package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type recordingSender struct {
	sent map[string]string
	fail map[string]bool
}

func (r *recordingSender) Send(_ context.Context, to, body string) error {
	if r.fail[to] {
		return errors.New("unreachable")
	}
	if r.sent == nil {
		r.sent = map[string]string{}
	}
	r.sent[to] = body
	return nil
}

func TestNotifier_SendsToEveryRecipient(t *testing.T) {
	s := &recordingSender{}
	d := NewNotifier(s).Notify(context.Background(), "hello", []string{"+1", "+2", "+3"})

	require.NoError(t, d.Err)
	assert.Equal(t, 3, d.Sent)
	assert.Equal(t, map[string]string{"+1": "hello", "+2": "hello", "+3": "hello"}, s.sent)
}

func TestNotifier_ContinuesAfterFailure(t *testing.T) {
	s := &recordingSender{fail: map[string]bool{"+2": true}}
	d := NewNotifier(s).Notify(context.Background(), "hello", []string{"+1", "+2", "+3"})

	require.Error(t, d.Err)
	assert.Contains(t, d.Err.Error(), "+2")
	assert.Equal(t, 2, d.Sent)
	assert.Equal(t, 1, d.Failed)
	assert.Contains(t, s.sent, "+3")
}

func TestNotifier_NoRecipients(t *testing.T) {
	d := NewNotifier(&recordingSender{}).Notify(context.Background(), "hello", nil)
	assert.NoError(t, d.Err)
	assert.Zero(t, d.Sent)
}

type fakeTwilio struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeTwilio) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = p
	return &twilioApi.ApiV2010Message{}, f.err
}

func TestTwilioSender_Send(t *testing.T) {
	api := &fakeTwilio{}
	s := &TwilioSender{api: api, from: "+15550000"}

	require.NoError(t, s.Send(context.Background(), "+15551234", "report"))
	assert.Equal(t, "+15551234", *api.params.To)
	assert.Equal(t, "+15550000", *api.params.From)
	assert.Equal(t, "report", *api.params.Body)

	api.err = errors.New("401")
	err := s.Send(context.Background(), "+15551234", "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twilio")
}

type fakeSNS struct {
	snsiface.SNSAPI
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) PublishWithContext(_ aws.Context, in *sns.PublishInput, _ ...request.Option) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, f.err
}

func TestSNSSender_Send(t *testing.T) {
	svc := &fakeSNS{}
	s := NewSNSSender(svc, "ERCOT")

	require.NoError(t, s.Send(context.Background(), "+15551234", "report"))
	assert.Equal(t, "+15551234", *svc.input.PhoneNumber)
	assert.Equal(t, "report", *svc.input.Message)
	assert.Equal(t, "ERCOT", *svc.input.MessageAttributes[senderIDAttribute].StringValue)

	svc.err = errors.New("opted out")
	require.Error(t, s.Send(context.Background(), "+15551234", "report"))
}
