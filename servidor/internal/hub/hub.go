// Package hub gerencia as conexões WebSocket do servidor de catálogo.
package hub

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/proto/molnet"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Catalog é a fonte das descrições servidas.
type Catalog interface {
	Names() ([]string, error)
	Load(name string) (*chem.Description, error)
}

// Hub gerencia as conexões WebSocket ativas
type Hub struct {
	catalog    Catalog
	clients    map[*websocket.Conn]*sync.Mutex
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// New cria um hub que responde com dados de catalog.
func New(catalog Catalog) *Hub {
	return &Hub{
		catalog:    catalog,
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		unregister: make(chan *websocket.Conn),
	}
}

// Run processa os desregistros. Deve rodar em sua própria goroutine.
func (h *Hub) Run() {
	for client := range h.unregister {
		h.mu.Lock()
		lock, ok := h.clients[client]
		if ok {
			lock.Lock()
			delete(h.clients, client)
			client.Close()
			lock.Unlock()
		}
		h.mu.Unlock()
		if ok {
			log.Printf("Cliente desregistrado: %s (%d conectados)", client.RemoteAddr(), h.ClientCount())
		}
	}
}

// add registra o cliente antes de qualquer escrita.
func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()
	log.Printf("Cliente registrado: %s (%d conectados)", conn.RemoteAddr(), h.ClientCount())
}

// ClientCount retorna quantos clientes estão registrados.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// WriteSafe garante que apenas uma goroutine escreva no WebSocket por vez
func (h *Hub) WriteSafe(conn *websocket.Conn, data []byte) error {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("cliente não encontrado no hub")
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// Send serializa e envia uma mensagem para um cliente.
func (h *Hub) Send(conn *websocket.Conn, t molnet.MsgType, msg molnet.Message) {
	if err := h.WriteSafe(conn, molnet.Wrap(t, msg)); err != nil {
		log.Printf("[Hub] Erro ao enviar %v para %s: %v", t, conn.RemoteAddr(), err)
	}
}

// ServeWs maneja requisições websocket do peer.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Erro no upgrade do WebSocket: %v", err)
		return
	}
	h.add(conn)

	h.Send(conn, molnet.MsgServerStatus, &molnet.ServerStatus{
		Message: "Conectado ao Servidor MoleculeVision",
		OK:      true,
	})

	go func() {
		defer func() {
			h.unregister <- conn
		}()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Conexão encerrada: %v", err)
				break
			}

			var env molnet.Envelope
			if err := env.Unmarshal(message); err != nil {
				log.Printf("Erro ao desempacotar envelope: %v", err)
				continue
			}

			h.handleClientMessage(conn, &env)
		}
	}()
}

func (h *Hub) handleClientMessage(conn *websocket.Conn, env *molnet.Envelope) {
	switch env.Type {
	case molnet.MsgPing:
		h.Send(conn, molnet.MsgPong, nil)

	case molnet.MsgListRequest:
		names, err := h.catalog.Names()
		if err != nil {
			log.Printf("[Catalog] Erro ao listar moléculas: %v", err)
			h.Send(conn, molnet.MsgServerStatus, &molnet.ServerStatus{Message: err.Error()})
			return
		}
		h.Send(conn, molnet.MsgMoleculeList, &molnet.MoleculeList{Names: names})

	case molnet.MsgMoleculeRequest:
		var req molnet.MoleculeRequest
		if err := req.Unmarshal(env.Payload); err != nil {
			log.Printf("Erro ao ler MoleculeRequest: %v", err)
			return
		}
		log.Printf("[Network] Molécula solicitada: %s", req.Name)

		d, err := h.catalog.Load(req.Name)
		if err != nil {
			h.Send(conn, molnet.MsgServerStatus, &molnet.ServerStatus{Message: err.Error()})
			return
		}
		h.Send(conn, molnet.MsgMolecule, &molnet.MoleculeMessage{Description: d})

	default:
		log.Printf("[Network] Tipo de mensagem ignorado: %v", env.Type)
	}
}
