package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/proto/molnet"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer responde cada LIST_REQUEST e MOLECULE_REQUEST com dados embutidos.
func fakeServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.BinaryMessage, molnet.Wrap(molnet.MsgServerStatus, &molnet.ServerStatus{Message: "ok", OK: true}))

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env molnet.Envelope
			if env.Unmarshal(data) != nil {
				continue
			}
			switch env.Type {
			case molnet.MsgListRequest:
				conn.WriteMessage(websocket.BinaryMessage, molnet.Wrap(molnet.MsgMoleculeList, &molnet.MoleculeList{Names: chem.BuiltinNames()}))
			case molnet.MsgMoleculeRequest:
				var req molnet.MoleculeRequest
				req.Unmarshal(env.Payload)
				d, _ := chem.Builtin(req.Name)
				conn.WriteMessage(websocket.BinaryMessage, molnet.Wrap(molnet.MsgMolecule, &molnet.MoleculeMessage{Description: d}))
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClientReceivesMolecule(t *testing.T) {
	c := NewNetworkClient(fakeServer(t))

	status := make(chan bool, 1)
	names := make(chan []string, 1)
	mols := make(chan *chem.Description, 1)
	c.OnStatus = func(msg string, ok bool) { status <- ok }
	c.OnList = func(n []string) { names <- n }
	c.OnMolecule = func(d *chem.Description) { mols <- d }

	require.NoError(t, c.Connect())
	defer c.Close()
	assert.True(t, c.IsConnected())

	select {
	case ok := <-status:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("status não recebido")
	}

	require.NoError(t, c.RequestList())
	select {
	case n := <-names:
		assert.Equal(t, chem.BuiltinNames(), n)
	case <-time.After(5 * time.Second):
		t.Fatal("lista não recebida")
	}

	require.NoError(t, c.RequestMolecule("ethene"))
	select {
	case d := <-mols:
		assert.Equal(t, chem.Ethene(), d)
	case <-time.After(5 * time.Second):
		t.Fatal("molécula não recebida")
	}
}

func TestSendWithoutConnection(t *testing.T) {
	c := NewNetworkClient("ws://127.0.0.1:1/ws")
	assert.ErrorIs(t, c.RequestList(), ErrNotConnected)
}

func TestConnectGivesUp(t *testing.T) {
	c := NewNetworkClient("ws://127.0.0.1:1/ws")
	c.MaxRetries = 2
	c.RetryDelay = time.Millisecond
	assert.Error(t, c.Connect())
	assert.False(t, c.IsConnected())
}
