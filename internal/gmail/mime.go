package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// base64LineLength is the canonical wrap width for MIME body encoding.
const base64LineLength = 76

// buildMessage renders a DraftRequest as an RFC 2822 multipart/mixed
// message: an HTML body part plus, when present, a base64 attachment part
// carrying the standardized attachment name.
func buildMessage(req DraftRequest) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", req.From)
	fmt.Fprintf(&buf, "To: %s\r\n", req.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", req.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="UTF-8"`},
	})
	if err != nil {
		return nil, err
	}
	if _, err := body.Write([]byte(req.HTMLBody)); err != nil {
		return nil, err
	}

	if len(req.Attachment) > 0 && req.AttachmentName != "" {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {attachmentContentType(req.AttachmentName)},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", req.AttachmentName)},
		})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(wrapBase64(req.Attachment))); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// attachmentContentType maps the standardized attachment name to a MIME
// type. Only the two resume formats are expected.
func attachmentContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// wrapBase64 encodes data and folds the output into 76-character lines.
func wrapBase64(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var sb strings.Builder
	for len(encoded) > base64LineLength {
		sb.WriteString(encoded[:base64LineLength])
		sb.WriteString("\r\n")
		encoded = encoded[base64LineLength:]
	}
	sb.WriteString(encoded)
	return sb.String()
}
