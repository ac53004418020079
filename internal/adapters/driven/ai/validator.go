package ai

import (
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates editor provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new editor config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEditor validates an editor configuration by pinging the provider.
func (v *ConfigValidator) ValidateEditor(config *domain.EditorSettings) error {
	return ValidateEditorConfig(config)
}
