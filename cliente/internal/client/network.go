package client

import (
	"errors"
	"log"
	"sync"
	"time"

	"MoleculeVision/shared/chem"
	"MoleculeVision/shared/proto/molnet"

	"github.com/gorilla/websocket"
)

// ErrNotConnected indica um envio sem conexão ativa.
var ErrNotConnected = errors.New("não conectado ao servidor")

// NetworkClient lida com a comunicação com o Servidor de catálogo
type NetworkClient struct {
	conn      *websocket.Conn
	url       string
	connected bool
	mu        sync.RWMutex
	writeMu   sync.Mutex

	// Tentativas de conexão
	MaxRetries int
	RetryDelay time.Duration

	// Callbacks para o App (chamados na goroutine de leitura)
	OnMolecule func(d *chem.Description)
	OnList     func(names []string)
	OnStatus   func(msg string, ok bool)
}

func NewNetworkClient(url string) *NetworkClient {
	return &NetworkClient{
		url:        url,
		MaxRetries: 10,
		RetryDelay: 2 * time.Second,
	}
}

func (c *NetworkClient) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	var conn *websocket.Conn
	var err error
	for i := 0; i < c.MaxRetries; i++ {
		log.Printf("[Network] Tentativa de conexão %d/%d em %s...", i+1, c.MaxRetries, c.url)
		conn, _, err = dialer.Dial(c.url, nil)
		if err == nil {
			break
		}
		log.Printf("[Network] Servidor ainda não está pronto: %v. Aguardando...", err)
		time.Sleep(c.RetryDelay)
	}

	if err != nil {
		log.Printf("[Network] ERRO CRÍTICO após %d tentativas: %v", c.MaxRetries, err)
		return err
	}
	if conn == nil {
		return ErrNotConnected
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

func (c *NetworkClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Close encerra a conexão.
func (c *NetworkClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// RequestList pede a lista de moléculas do catálogo.
func (c *NetworkClient) RequestList() error {
	return c.Send(molnet.MsgListRequest, nil)
}

// RequestMolecule pede uma molécula pelo nome.
func (c *NetworkClient) RequestMolecule(name string) error {
	return c.Send(molnet.MsgMoleculeRequest, &molnet.MoleculeRequest{Name: name})
}

func (c *NetworkClient) Send(msgType molnet.MsgType, msg molnet.Message) error {
	c.mu.RLock()
	conn, connected := c.conn, c.connected
	c.mu.RUnlock()
	if !connected {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	err := conn.WriteMessage(websocket.BinaryMessage, molnet.Wrap(msgType, msg))
	c.writeMu.Unlock()

	if err != nil {
		log.Printf("[Network] Erro ao enviar mensagem: %v", err)
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}
	return err
}

func (c *NetworkClient) readLoop(conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[Network] Conexão perdida: %v", err)
			break
		}

		var env molnet.Envelope
		if err := env.Unmarshal(message); err != nil {
			log.Printf("[Network] Erro ao desempacotar envelope: %v", err)
			continue
		}

		c.handleMessage(&env)
	}
}

func (c *NetworkClient) handleMessage(env *molnet.Envelope) {
	switch env.Type {
	case molnet.MsgServerStatus:
		var status molnet.ServerStatus
		if err := status.Unmarshal(env.Payload); err == nil {
			if c.OnStatus != nil {
				c.OnStatus(status.Message, status.OK)
			}
		}
	case molnet.MsgMoleculeList:
		var list molnet.MoleculeList
		if err := list.Unmarshal(env.Payload); err == nil {
			log.Printf("[Network] Recebidas %d moléculas do catálogo", len(list.Names))
			if c.OnList != nil {
				c.OnList(list.Names)
			}
		}
	case molnet.MsgMolecule:
		var msg molnet.MoleculeMessage
		if err := msg.Unmarshal(env.Payload); err != nil {
			log.Printf("[Network] Erro ao ler molécula: %v", err)
			return
		}
		log.Printf("[Network] Molécula recebida: %s (%d átomos)", msg.Description.Name, msg.Description.AtomCount())
		if c.OnMolecule != nil {
			c.OnMolecule(msg.Description)
		}
	case molnet.MsgPong:
		// Ping/Pong handled
	}
}
