package dispatch

import (
	"github.com/m04kA/SMC-ScoringService/internal/schema"
)

// Имена методов API
const (
	MethodOnlineScore      = "online_score"
	MethodClientsInterests = "clients_interests"
)

// Имена полей конверта запроса
const (
	fieldAccount   = "account"
	fieldLogin     = "login"
	fieldMethod    = "method"
	fieldToken     = "token"
	fieldArguments = "arguments"
)

// envelopeSchema схема конверта запроса. Конверт валидируется тем же
// механизмом, что и аргументы методов
var envelopeSchema = schema.NewDef([]schema.FieldSpec{
	{Name: fieldAccount, Kind: schema.KindChar, Required: false, Nullable: true},
	{Name: fieldLogin, Kind: schema.KindChar, Required: true, Nullable: true},
	{Name: fieldMethod, Kind: schema.KindChar, Required: true, Nullable: false},
	{Name: fieldToken, Kind: schema.KindChar, Required: true, Nullable: true},
	{Name: fieldArguments, Kind: schema.KindArguments, Required: true, Nullable: false},
})

// ruleScorePairs правило схемы online_score: хотя бы одна пара
// идентифицирующих полей передана целиком
const ruleScorePairs = "отсутствует хотя бы одна пара phone-email, first_name-last_name, gender-birthday"

// onlineScoreSchema схема аргументов метода online_score
var onlineScoreSchema = schema.NewDef(
	[]schema.FieldSpec{
		{Name: "phone", Kind: schema.KindPhone, Required: false, Nullable: true},
		{Name: "email", Kind: schema.KindEmail, Required: false, Nullable: true},
		{Name: "first_name", Kind: schema.KindChar, Required: false, Nullable: true},
		{Name: "last_name", Kind: schema.KindChar, Required: false, Nullable: true},
		{Name: "birthday", Kind: schema.KindBirthday, Required: false, Nullable: true},
		{Name: "gender", Kind: schema.KindGender, Required: false, Nullable: true},
	},
	schema.CrossRule{
		Name: ruleScorePairs,
		Check: schema.AnyOf(
			schema.PairPresent("phone", "email"),
			schema.PairPresent("first_name", "last_name"),
			schema.PairPresent("gender", "birthday"),
		),
	},
)

// clientsInterestsSchema схема аргументов метода clients_interests
var clientsInterestsSchema = schema.NewDef([]schema.FieldSpec{
	{Name: "client_ids", Kind: schema.KindClientIDs, Required: true, Nullable: false},
	{Name: "date", Kind: schema.KindDate, Required: false, Nullable: true},
})
