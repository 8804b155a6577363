// Package quote builds the WhatsApp link customers use to ask for a price,
// and a QR code of it for printed material.
package quote

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
)

// Phone is the shop's WhatsApp number in international format.
const Phone = "573125854503"

// DefaultQRSize is the QR code edge length in pixels.
const DefaultQRSize = 256

// Message is the prefilled chat text for a project.
func Message(projectName string, size garment.Size) string {
	msg := fmt.Sprintf(`Hola Furia Rock, estoy interesado en cotizar mi diseño "%s". Ya he descargado el mockup.`, projectName)
	if size != "" {
		msg += fmt.Sprintf(" Talla: %s.", size)
	}
	return msg
}

// Link returns the wa.me URL that opens a chat with Message prefilled.
func Link(projectName string, size garment.Size) string {
	return "https://wa.me/" + Phone + "?text=" + escape(Message(projectName, size))
}

// escape percent-encodes s the way browsers encode a URI component, with
// spaces as %20 rather than '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// QR renders link as a PNG QR code of size×size pixels.
func QR(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode QR code")
	}
	return png, nil
}
