package util

import "sync"

// KeyedQueue é uma fila FIFO thread-safe com no máximo um item por chave.
// Reenfileirar uma chave presente troca o valor e mantém a posição.
// O cliente a usa para moléculas recebidas: pedidos repetidos do mesmo
// nome só são construídos uma vez, com a última versão recebida.
type KeyedQueue[K comparable, V any] struct {
	mu    sync.Mutex
	keys  []K
	items map[K]V
}

// NewKeyedQueue cria uma fila vazia.
func NewKeyedQueue[K comparable, V any]() *KeyedQueue[K, V] {
	return &KeyedQueue[K, V]{items: make(map[K]V)}
}

// Push enfileira value sob key. Retorna false se key já estava na fila.
func (q *KeyedQueue[K, V]) Push(key K, value V) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, exists := q.items[key]
	q.items[key] = value
	if !exists {
		q.keys = append(q.keys, key)
	}
	return !exists
}

// Drain esvazia a fila chamando fn em ordem, fora do lock.
func (q *KeyedQueue[K, V]) Drain(fn func(K, V)) int {
	q.mu.Lock()
	keys := q.keys
	items := q.items
	q.keys = nil
	q.items = make(map[K]V)
	q.mu.Unlock()

	for _, k := range keys {
		fn(k, items[k])
	}
	return len(keys)
}

// Len retorna o número de itens na fila.
func (q *KeyedQueue[K, V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys)
}

// Contains verifica se uma chave está na fila.
func (q *KeyedQueue[K, V]) Contains(key K) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.items[key]
	return ok
}
