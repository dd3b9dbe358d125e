//go:generate mockgen -source=interfaces.go -destination=interface_mock.go -package=app
package app

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/denizgursoy/stepindex/pkg/steps"
)

type (
	Reporter interface {
		FileChecked(path string, stepLines int)
		Undefined(path string, diagnostic protocol.Diagnostic)
		Warning(warning steps.Warning)
		Flush()
	}
)
