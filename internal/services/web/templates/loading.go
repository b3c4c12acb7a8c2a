package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Loading renders an indeterminate loading ring.
func Loading() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<span class="loading loading-ring loading-md"></span>`)
		return err
	})
}
