package extractors

import (
	"github.com/ragdex-labs/ragdex-cli/internal/extractors/html"
	"github.com/ragdex-labs/ragdex-cli/internal/extractors/markdown"
	"github.com/ragdex-labs/ragdex-cli/internal/extractors/pdf"
	"github.com/ragdex-labs/ragdex-cli/internal/extractors/plaintext"
)

// Defaults returns a registry with the standard corpus extractors:
// pdf (papers), md/markdown/html (framework docs), txt (guides).
func Defaults() *Registry {
	return NewRegistry(
		pdf.New(),
		markdown.New(),
		html.New(),
		plaintext.New(),
	)
}
