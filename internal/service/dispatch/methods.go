package dispatch

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-ScoringService/internal/domain"
	"github.com/m04kA/SMC-ScoringService/internal/schema"
	"github.com/m04kA/SMC-ScoringService/internal/service/scoring"
	"github.com/m04kA/SMC-ScoringService/pkg/ptr"
)

// scoreFields поля, участвующие в вычислении скоринга (для лога has)
var scoreFields = []string{"phone", "email", "first_name", "last_name", "birthday", "gender"}

// onlineScoreHandler обработчик метода online_score
type onlineScoreHandler struct {
	scoring    ScoreService
	adminScore float64
	logger     Logger
}

func newOnlineScoreHandler(scoreSvc ScoreService, adminScore float64, logger Logger) *onlineScoreHandler {
	return &onlineScoreHandler{scoring: scoreSvc, adminScore: adminScore, logger: logger}
}

func (h *onlineScoreHandler) Schema() *schema.Def {
	return onlineScoreSchema
}

func (h *onlineScoreHandler) Handle(ctx context.Context, req *Request) (any, error) {
	// Администратор получает фиксированный скоринг без вычисления
	if req.IsAdmin {
		return domain.ScoreResult{Score: h.adminScore}, nil
	}

	input := scoring.Input{
		Phone:     req.Args.String("phone"),
		Email:     req.Args.String("email"),
		FirstName: req.Args.String("first_name"),
		LastName:  req.Args.String("last_name"),
		Gender:    req.Args.Int("gender"),
	}
	if birthday, ok := req.Args.Date("birthday"); ok {
		input.Birthday = ptr.Ptr(birthday)
	}

	has := make([]string, 0, len(scoreFields))
	for _, name := range scoreFields {
		if req.Args.Has(name) {
			has = append(has, name)
		}
	}
	h.logger.Info("Scoring request has=[%s] (request_id=%s)", strings.Join(has, ", "), req.RequestID)

	score := h.scoring.Score(ctx, input)

	return domain.ScoreResult{Score: score}, nil
}

// clientsInterestsHandler обработчик метода clients_interests
type clientsInterestsHandler struct {
	interests InterestsService
	logger    Logger
}

func newClientsInterestsHandler(interestsSvc InterestsService, logger Logger) *clientsInterestsHandler {
	return &clientsInterestsHandler{interests: interestsSvc, logger: logger}
}

func (h *clientsInterestsHandler) Schema() *schema.Def {
	return clientsInterestsSchema
}

func (h *clientsInterestsHandler) Handle(ctx context.Context, req *Request) (any, error) {
	clientIDs := req.Args.ClientIDs("client_ids")

	h.logger.Info("Interests request nclients=%d (request_id=%s)", len(clientIDs), req.RequestID)

	return h.interests.Get(ctx, clientIDs), nil
}
