package gmail

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageHeadersAndBody(t *testing.T) {
	raw, err := buildMessage(DraftRequest{
		To:       "alex@example.com",
		From:     "saloni@example.com",
		Subject:  "Application for Full Stack Engineer - Saloni Ranka",
		HTMLBody: "Hi Alex,<br>regards",
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", msg.Header.Get("To"))
	assert.Equal(t, "saloni@example.com", msg.Header.Get("From"))
	assert.Equal(t, "Application for Full Stack Engineer - Saloni Ranka", msg.Header.Get("Subject"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	part, err := mr.NextPart()
	require.NoError(t, err)
	assert.Contains(t, part.Header.Get("Content-Type"), "text/html")
	body, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "Hi Alex,<br>regards", string(body))

	_, err = mr.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestBuildMessageAttachment(t *testing.T) {
	content := bytes.Repeat([]byte("resume bytes "), 20)
	raw, err := buildMessage(DraftRequest{
		To:             "alex@example.com",
		From:           "saloni@example.com",
		Subject:        "Application for FSE - Saloni Ranka",
		HTMLBody:       "body",
		AttachmentName: "Saloni_Ranka_FSE.pdf",
		Attachment:     content,
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	_, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	_, err = mr.NextPart()
	require.NoError(t, err)

	attachment, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", attachment.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Saloni_Ranka_FSE.pdf"`, attachment.Header.Get("Content-Disposition"))
	assert.Equal(t, "base64", attachment.Header.Get("Content-Transfer-Encoding"))

	encoded, err := io.ReadAll(attachment)
	require.NoError(t, err)
	for _, line := range strings.Split(string(encoded), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestBuildMessageSkipsEmptyAttachment(t *testing.T) {
	raw, err := buildMessage(DraftRequest{
		To:       "a@example.com",
		From:     "b@example.com",
		Subject:  "s",
		HTMLBody: "body",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Content-Disposition: attachment")
}

func TestAttachmentContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", attachmentContentType("Resume_FSE.pdf"))
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		attachmentContentType("Resume_FSE.docx"))
	assert.Equal(t, "application/octet-stream", attachmentContentType("Resume_FSE.bin"))
}
