package devviz_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zls/internal/ctranslate"
	"zls/internal/devviz"
	"zls/internal/store"
	"zls/internal/syntax"
)

type fakeTree struct{}

func (fakeTree) Close() {}

type fakeScope struct{}

func (fakeScope) Close()                                    {}
func (fakeScope) ErrorCompletions() []syntax.CompletionItem { return nil }
func (fakeScope) EnumCompletions() []syntax.CompletionItem  { return nil }

func fakeCollaborators() syntax.Collaborators {
	return syntax.Collaborators{
		Parse:           func([]byte) (syntax.Tree, error) { return fakeTree{}, nil },
		MakeScope:       func(syntax.Tree) (syntax.Scope, error) { return fakeScope{}, nil },
		CollectImports:  func(syntax.Tree) []string { return nil },
		CollectCImport:  func(syntax.Tree) []syntax.NodeIndex { return nil },
		ConvertCInclude: func(syntax.Tree, syntax.NodeIndex) (string, bool) { return "", false },
	}
}

func TestServeRejectsNonLoopbackAddress(t *testing.T) {
	h := devviz.NewHub(store.New(store.Config{}, fakeCollaborators(), ctranslate.NewTranslator(nil, 0)))
	_, err := h.Serve("93.184.216.34:4900")
	assert.Error(t, err)
}

func TestServeSendsInitSnapshotToNewClient(t *testing.T) {
	s := store.New(store.Config{}, fakeCollaborators(), ctranslate.NewTranslator(nil, 0))
	_, err := s.Open("file:///a.zig", "const x = 1;\n")
	require.NoError(t, err)

	h := devviz.NewHub(s)
	url, err := h.Serve("127.0.0.1:0")
	require.NoError(t, err)

	wsURL := "ws" + url[len("http"):] + "ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Op       string `json:"op"`
		Snapshot struct {
			Vertices []struct {
				URI string `json:"uri"`
			} `json:"vertices"`
		} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "init", msg.Op)
	require.Len(t, msg.Snapshot.Vertices, 1)
	assert.Equal(t, "file:///a.zig", msg.Snapshot.Vertices[0].URI)
}
