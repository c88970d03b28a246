package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
)

func TestEmailInput(t *testing.T) {
	in := EmailInput("noreply@finlight.in", "user@example.com", "Diwali Planning", "text", "<p>text</p>")

	assert.Equal(t, []string{"user@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "noreply@finlight.in", aws.ToString(in.Source))
	assert.Equal(t, "Diwali Planning", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "text", aws.ToString(in.Message.Body.Text.Data))
	assert.Equal(t, "<p>text</p>", aws.ToString(in.Message.Body.Html.Data))
}

func TestSMSInput(t *testing.T) {
	in := SMSInput("+919800000000", "hello")
	assert.Equal(t, "+919800000000", aws.ToString(in.PhoneNumber))
	assert.Equal(t, "hello", aws.ToString(in.Message))
}
