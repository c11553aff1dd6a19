package dispatch

import (
	"crypto/sha512"
	"encoding/hex"
	"time"
)

// adminTokenLayout часовое окно действия административного токена
const adminTokenLayout = "2006010215"

// authenticate проверяет токен конверта против детерминированной подписи.
// Обычный пользователь подписывается парой account+login с общим секретом,
// администратор - текущим часом с административным секретом
func (s *Service) authenticate(account, login, token string, isAdmin bool, now time.Time) bool {
	var digest string
	if isAdmin {
		digest = signature(now.Format(adminTokenLayout) + s.adminSalt)
	} else {
		digest = signature(account + login + s.salt)
	}
	return digest == token
}

func signature(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}
