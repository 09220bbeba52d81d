package conversation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"freightdesk/services/support-api/internal/utils/idgen"
)

// ===============================================
// Conversation Validation
// ===============================================

// ValidationConfig holds conversation-level validation rules
type ValidationConfig struct {
	MaxBodyLength    int
	MaxConcernLength int
}

// DefaultValidationConfig returns the service's validation rules
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MaxBodyLength:    4000,
		MaxConcernLength: 1000,
	}
}

// Validator handles conversation-level validation
type Validator struct {
	config *ValidationConfig
}

// NewValidator creates a validator for conversations
func NewValidator(config *ValidationConfig) *Validator {
	if config == nil {
		config = DefaultValidationConfig()
	}
	return &Validator{config: config}
}

// ValidateConversationID validates conversation public ID format
func (v *Validator) ValidateConversationID(id string) error {
	if id == "" {
		return fmt.Errorf("conversation ID cannot be empty")
	}

	if !strings.HasPrefix(id, "conv_") {
		return fmt.Errorf("conversation ID must start with 'conv_' prefix")
	}

	if !idgen.ValidateIDFormat(id, "conv") {
		return fmt.Errorf("invalid conversation ID format")
	}

	return nil
}

// ValidateMessageBody validates a customer or admin supplied message body.
// An empty body is reported separately so callers can treat it as a no-op.
func (v *Validator) ValidateMessageBody(body string) error {
	length := utf8.RuneCountInString(body)
	if length > v.config.MaxBodyLength {
		return fmt.Errorf("message body cannot exceed %d characters (got %d)", v.config.MaxBodyLength, length)
	}

	if strings.Contains(body, "\x00") {
		return fmt.Errorf("message body cannot contain null bytes")
	}

	return nil
}

// IsBlank reports whether the body is empty or whitespace only.
func IsBlank(body string) bool {
	return strings.TrimSpace(body) == ""
}
