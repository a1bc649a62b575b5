package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// lockKey блокировка поля или бронирования
type lockKey struct {
	kind string
	id   int64
}

// txState транзакция in-memory хранилища: удерживаемые блокировки полей
// и бронирований, журнал отката изменённых бронирований
type txState struct {
	mu      sync.Mutex
	held    map[lockKey]struct{}
	unlocks []func()
	undo    []func()
}

// holds сообщает, захвачена ли блокировка этой транзакцией
func (s *txState) holds(key lockKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.held[key]
	return ok
}

func (s *txState) addUnlock(key lockKey, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held == nil {
		s.held = make(map[lockKey]struct{})
	}
	s.held[key] = struct{}{}
	s.unlocks = append(s.unlocks, fn)
}

func (s *txState) addUndo(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = append(s.undo, fn)
}

func (s *txState) finish(failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if failed {
		for i := len(s.undo) - 1; i >= 0; i-- {
			s.undo[i]()
		}
	}
	// Блокировки отпускаются в обратном порядке захвата
	for i := len(s.unlocks) - 1; i >= 0; i-- {
		s.unlocks[i]()
	}
	s.held = nil
	s.unlocks = nil
	s.undo = nil
}

func getTx(ctx context.Context) (*txState, bool) {
	tx, ok := ctx.Value(txKey{}).(*txState)
	return tx, ok
}

// TxManager менеджер транзакций для in-memory хранилища.
// Совместим по контракту с txmanager.TransactionManager.
type TxManager struct{}

func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет функцию в транзакции. Если транзакция уже есть в контексте,
// переиспользует её. При ошибке или панике изменения откатываются.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := getTx(ctx); ok {
		return fn(ctx)
	}

	tx := &txState{}
	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			tx.finish(true)
			panic(p)
		}
		tx.finish(err != nil)
	}()

	return fn(txCtx)
}

// DoSerializable в памяти совпадает с Do: блокировки полей и бронирований уже дают сериализацию
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// DoReadOnly выполняет функцию без транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
