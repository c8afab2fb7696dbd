// Package idgen выдаёт непрозрачные идентификаторы сущностей вида <kind>_<unix ms>_<random>.
package idgen

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind — человекочитаемый префикс идентификатора.
type Kind string

const (
	KindResource Kind = "res"
	KindRequest  Kind = "req"
	KindChat     Kind = "chat"
	KindMessage  Kind = "msg"
	KindProduct  Kind = "prod"
	KindRating   Kind = "rate"
	KindSurplus  Kind = "surplus"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// now подменяется в тестах.
var now = time.Now

// NextID собирает идентификатор из префикса, момента создания и случайного суффикса.
// Суффикс берётся из UUIDv4, поэтому вызовы в одну миллисекунду не сталкиваются на практике.
func NextID(kind Kind) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return string(kind) + "_" + strconv.FormatInt(now().UnixMilli(), 10) + "_" + suffix
}

// Valid проверяет, что строка может быть идентификатором: непустая, не длиннее 128 символов,
// только латиница, цифры, '_' и '-'. Формат NextID не требуется, идентификаторы непрозрачны.
func Valid(id string) bool {
	return idPattern.MatchString(id)
}
