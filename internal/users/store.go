// Package users は登録済みユーザーのインメモリ保存を提供します。
package users

import "sync"

// User は登録済みユーザー1件を表します。
// Password は平文のまま保持されます（ハッシュ化は行いません）。
type User struct {
	Email    string
	Password string
}

// Store はユーザーを登録順に保持します。
// プロセス起動時は空で、削除・更新の操作はありません。再起動で内容は失われます。
type Store struct {
	mu    sync.RWMutex
	users []User
}

// NewStore は空の Store を作成します。
func NewStore() *Store {
	return &Store{}
}

// Exists は email が完全一致するユーザーがいれば true を返します。
func (s *Store) Exists(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

// FindMatch は email と password の両方が完全一致するユーザーを返します。
func (s *Store) FindMatch(email, password string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}

// Insert はユーザーを末尾に追加します。
// 重複チェックは行わないため、呼び出し側で Exists を確認してください。
func (s *Store) Insert(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, User{Email: email, Password: password})
}

// Len は登録済みユーザー数を返します。
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
