package transcriber

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"bitbucket.org/airenas/meetsum/internal/pkg/api"
	"bitbucket.org/airenas/meetsum/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testReq struct {
	URL      string
	auth     string
	model    string
	fileName string
	file     string
}

func initTestServer(t *testing.T, code int, resp string) (*Client, *httptest.Server, *[]testReq) {
	t.Helper()
	resRequest := make([]testReq, 0)
	rLock := &sync.Mutex{}
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rLock.Lock()
		defer rLock.Unlock()
		tr := testReq{URL: req.URL.String(), auth: req.Header.Get("Authorization")}
		if err := req.ParseMultipartForm(10 << 20); err == nil {
			tr.model = req.FormValue("model")
			if f, h, err := req.FormFile("file"); err == nil {
				b, _ := io.ReadAll(f)
				tr.file, tr.fileName = string(b), h.Filename
			}
		}
		resRequest = append(resRequest, tr)
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(code)
		rw.Write([]byte(resp))
	}))
	oc, err := utils.NewOpenAIClient("key", server.URL, 0)
	require.Nil(t, err)
	c, err := NewClient(oc, DefaultModel)
	require.Nil(t, err)
	return c, server, &resRequest
}

func testAudio() *api.AudioBlob {
	return &api.AudioBlob{Name: "meeting.mp3", Data: []byte("body")}
}

func TestNewClient(t *testing.T) {
	oc, _ := utils.NewOpenAIClient("key", "http://localhost/v1", 0)
	_, err := NewClient(oc, "")
	assert.NotNil(t, err)
	_, err = NewClient(nil, DefaultModel)
	assert.NotNil(t, err)
	c, err := NewClient(oc, DefaultModel)
	assert.Nil(t, err)
	assert.NotNil(t, c)
}

func TestTranscribe(t *testing.T) {
	c, server, tReq := initTestServer(t, 200, `{"text":"We agreed to launch Friday."}`)
	defer server.Close()

	r, err := c.Transcribe(context.Background(), testAudio())

	assert.Nil(t, err)
	assert.Equal(t, "We agreed to launch Friday.", r)
	require.Equal(t, 1, len(*tReq))
	rq := (*tReq)[0]
	assert.Equal(t, "/audio/transcriptions", rq.URL)
	assert.Equal(t, "Bearer key", rq.auth)
	assert.Equal(t, "whisper-large-v3", rq.model)
	assert.Equal(t, "meeting.mp3", rq.fileName)
	assert.Equal(t, "body", rq.file)
}

func TestTranscribe_WrongCode_Fails(t *testing.T) {
	c, server, tReq := initTestServer(t, 500, `{"error":{"message":"upstream down","type":"server_error"}}`)
	defer server.Close()

	r, err := c.Transcribe(context.Background(), testAudio())

	assert.NotNil(t, err)
	assert.Equal(t, "", r)
	assert.Equal(t, 1, len(*tReq))
}

func TestTranscribe_Unauthorized_Fails(t *testing.T) {
	c, server, _ := initTestServer(t, 401, `not json`)
	defer server.Close()

	_, err := c.Transcribe(context.Background(), testAudio())

	assert.NotNil(t, err)
}

func TestTranscribe_WrongJSON_Fails(t *testing.T) {
	c, server, _ := initTestServer(t, 200, `olia`)
	defer server.Close()

	_, err := c.Transcribe(context.Background(), testAudio())

	assert.NotNil(t, err)
}

func TestTranscribe_EmptyText(t *testing.T) {
	c, server, tReq := initTestServer(t, 200, `{"text":""}`)
	defer server.Close()

	r, err := c.Transcribe(context.Background(), testAudio())

	assert.Nil(t, err)
	assert.Equal(t, "", r)
	assert.Equal(t, 1, len(*tReq))
}

func TestTranscribe_NoAudio_NoCall(t *testing.T) {
	c, server, tReq := initTestServer(t, 200, `{"text":"olia"}`)
	defer server.Close()

	_, err := c.Transcribe(context.Background(), &api.AudioBlob{Name: "a.mp3"})
	assert.NotNil(t, err)
	_, err = c.Transcribe(context.Background(), nil)
	assert.NotNil(t, err)
	_, err = c.Transcribe(context.Background(), &api.AudioBlob{Data: []byte("body")})
	assert.NotNil(t, err)
	assert.Equal(t, 0, len(*tReq))
}
