package domain

// Gender представляет пол клиента
type Gender int

const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

// GenderNames соответствие числового кода пола его названию
var GenderNames = map[Gender]string{
	GenderUnknown: "unknown",
	GenderMale:    "male",
	GenderFemale:  "female",
}

// Valid проверяет, что значение пола входит в допустимый набор
func (g Gender) Valid() bool {
	_, ok := GenderNames[g]
	return ok
}

// String возвращает название пола
func (g Gender) String() string {
	if name, ok := GenderNames[g]; ok {
		return name
	}
	return "invalid"
}

// ScoreResult результат вычисления скоринга
type ScoreResult struct {
	Score float64 `json:"score"`
}

// ClientInterests соответствие ID клиента списку его интересов.
// Каждый запрошенный ID присутствует в результате, возможно с пустым списком.
type ClientInterests map[int64][]string
