package kvstore

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ отсутствует или запись истекла
	ErrKeyNotFound = errors.New("kvstore: key not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("kvstore: failed to build SQL query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("kvstore: failed to execute SQL query")
)
