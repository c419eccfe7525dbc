package notify

import (
	"net/http"

	"github.com/resend/resend-go/v2"
)

// UseDefaultClient switches to http.DefaultClient so specs can swap its transport.
func (n *EmailNotifier) UseDefaultClient() {
	n.client = resend.NewCustomClient(http.DefaultClient, n.apiKey)
}
