package tracker

import (
	"log"
	"time"

	"stella/models"
)

/************************************************
/**** MARK: TABELAS DE MAPEAMENTO ****/
/************************************************/

// Severidade reportada -> impacto base.
var severityImpact = map[string]float64{
	models.EVENT_SEVERITY_LOW:    0.3,
	models.EVENT_SEVERITY_MEDIUM: 0.6,
	models.EVENT_SEVERITY_HIGH:   0.9,
}

// Tipo de evento -> velocidade de decaimento (fixa na criação).
var decayByType = map[string]string{
	models.EVENT_TYPE_INJURY:      models.EVENT_DECAY_MEDIUM,
	models.EVENT_TYPE_ILLNESS:     models.EVENT_DECAY_FAST,
	models.EVENT_TYPE_TRAVEL:      models.EVENT_DECAY_FAST,
	models.EVENT_TYPE_WORK_STRESS: models.EVENT_DECAY_SLOW,
	models.EVENT_TYPE_FAMILY:      models.EVENT_DECAY_MEDIUM,
	models.EVENT_TYPE_OTHER:       models.EVENT_DECAY_MEDIUM,
}

// Sentimento reportado -> variação no impacto base.
// Valores desconhecidos viram 0 (lookup com fallback, nunca erro).
var feelingDelta = map[string]float64{
	FeelingBetter: -0.2,
	FeelingWorse:  0.2,
	FeelingSame:   0.0,
}

const (
	FeelingBetter = "better"
	FeelingWorse  = "worse"
	FeelingSame   = "same"
)

const (
	// VisibilityThreshold: abaixo disso o evento não é mais levado pra conversa.
	VisibilityThreshold = 0.1
	// ResolutionThreshold: abaixo disso o evento é encerrado automaticamente.
	ResolutionThreshold = 0.05
	// DefaultLookbackDays limita a janela de busca do ListActive.
	DefaultLookbackDays = 30
)

/************************************************
/**** MARK: RESULTADOS ****/
/************************************************/

const (
	OutcomeBetterResolved = "better_resolved"
	OutcomeBetterOngoing  = "better_ongoing"
	OutcomeWorse          = "worse"
	OutcomeSame           = "same"
	OutcomeNotFound       = "not_found"
)

// Falas da Stella por categoria de desfecho.
var acks = map[string]string{
	OutcomeBetterResolved: "Que ótimo ouvir isso! Parece que essa fase passou. Vou voltar ao ritmo normal dos seus hábitos.",
	OutcomeBetterOngoing:  "Fico feliz que esteja melhorando. Por enquanto sigo pegando leve com você.",
	OutcomeWorse:          "Sinto muito que tenha piorado. Vou ajustar as expectativas dos seus hábitos até você se recuperar.",
	OutcomeSame:           "Entendi, obrigada por me manter informada. Seguimos acompanhando juntas.",
	OutcomeNotFound:       "Não encontrei esse registro por aqui. Quer que eu anote como uma situação nova?",
}

// AckFallback é a resposta genérica quando o armazenamento falha:
// a conversa continua, o erro fica só no log.
const AckFallback = "Entendi, obrigada por compartilhar. Vamos seguir com a nossa conversa."

// UpdateResult descreve o desfecho de um Update.
// Outcome é sempre uma das categorias acima; Event é nil quando NotFound.
type UpdateResult struct {
	Outcome string                   `json:"outcome"`
	Ack     string                   `json:"ack"`
	Event   *models.ExceptionalEvent `json:"event,omitempty"`
}

// ActiveEvent é um evento aberto com o impacto corrente (projeção) anexado.
type ActiveEvent struct {
	models.ExceptionalEvent
	CurrentImpact float64 `json:"current_impact"`
}

/************************************************
/**** MARK: TRACKER ****/
/************************************************/

// Tracker mantém os eventos excepcionais de cada usuário.
// O Store é injetado (gorm em produção, fake em memória nos testes);
// Now também, pra manter o decaimento determinístico em teste.
type Tracker struct {
	store Store
	Now   func() time.Time
}

func New(store Store) *Tracker {
	return &Tracker{store: store, Now: time.Now}
}

// Create registra um evento novo a partir do intent decodificado pelo agente.
// Nomes de hábito sem correspondência exata são descartados em silêncio.
// Exatamente uma tentativa de escrita; sem retry.
func (t *Tracker) Create(userID int64, eventType, title, description, severity string, habitNames []string) (*models.ExceptionalEvent, error) {
	impact, ok := severityImpact[severity]
	if !ok {
		impact = severityImpact[models.EVENT_SEVERITY_MEDIUM]
	}

	decay, ok := decayByType[eventType]
	if !ok {
		decay = models.EVENT_DECAY_MEDIUM
	}

	var habitIDs []int64
	if len(habitNames) > 0 {
		ids, err := t.store.HabitIDsByNames(userID, habitNames)
		if err != nil {
			// best-effort: evento vale mais que o vínculo com hábitos
			log.Printf("tracker: habit lookup error (user=%d): %v", userID, err)
		} else {
			habitIDs = ids
		}
	}

	now := t.Now()
	ev := &models.ExceptionalEvent{
		UserID:          userID,
		EventType:       eventType,
		Title:           title,
		Description:     description,
		Severity:        severity,
		ImpactLevel:     impact,
		DecayRate:       decay,
		Status:          models.EVENT_STATUS_ACTIVE,
		MentionCount:    1,
		CreatedAt:       &now,
		LastMentionedAt: &now,
	}
	ev.SetHabitIDs(habitIDs)

	if err := t.store.CreateEvent(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Update aplica um reporte de progresso ao evento aberto mais recente com esse
// título. Não cria nada quando não encontra (a decisão de criar é do caller).
func (t *Tracker) Update(userID int64, title, note, feeling, conversationID string) (*UpdateResult, error) {
	ev, err := t.store.FindOpenEventByTitle(userID, title)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return &UpdateResult{Outcome: OutcomeNotFound, Ack: acks[OutcomeNotFound]}, nil
	}

	delta := feelingDelta[feeling] // desconhecido -> 0
	newImpact := clamp01(ev.ImpactLevel + delta)
	ev.ImpactLevel = newImpact

	now := t.Now()

	// Transição de status, nesta ordem:
	// 1. piorou -> reativa sempre
	// 2. melhorou e impacto < 0.3 -> improving
	// 3. senão mantém
	// 4. override terminal: impacto < 0.05 -> resolved
	switch {
	case feeling == FeelingWorse:
		ev.Status = models.EVENT_STATUS_ACTIVE
	case feeling == FeelingBetter && newImpact < 0.3:
		ev.Status = models.EVENT_STATUS_IMPROVING
	}
	if newImpact < ResolutionThreshold {
		ev.Status = models.EVENT_STATUS_RESOLVED
		if ev.ResolvedAt == nil {
			ev.ResolvedAt = &now
		}
	}

	ev.MentionCount++
	ev.LastMentionedAt = &now

	if err := t.store.SaveEvent(ev); err != nil {
		return nil, err
	}

	up := &models.EventUpdate{
		EventID:        ev.ID,
		ConversationID: conversationID,
		Note:           note,
		ImpactChange:   delta,
		CreatedAt:      &now,
	}
	if err := t.store.AppendUpdate(up); err != nil {
		// evento já salvo; histórico perdido fica só no log
		log.Printf("tracker: append update error (event=%d): %v", ev.ID, err)
	}

	outcome := OutcomeSame
	switch feeling {
	case FeelingWorse:
		outcome = OutcomeWorse
	case FeelingBetter:
		if ev.Status == models.EVENT_STATUS_RESOLVED {
			outcome = OutcomeBetterResolved
		} else {
			outcome = OutcomeBetterOngoing
		}
	}

	return &UpdateResult{Outcome: outcome, Ack: acks[outcome], Event: ev}, nil
}

// ListActive devolve os eventos abertos criados dentro da janela de lookback
// cujo impacto corrente ainda passa do limiar de visibilidade.
func (t *Tracker) ListActive(userID int64, lookbackDays int) ([]ActiveEvent, error) {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	now := t.Now()
	since := now.AddDate(0, 0, -lookbackDays)

	events, err := t.store.ListOpenEvents(userID, since)
	if err != nil {
		return nil, err
	}

	out := make([]ActiveEvent, 0, len(events))
	for _, ev := range events {
		impact := CurrentImpact(&ev, now)
		if impact > VisibilityThreshold {
			out = append(out, ActiveEvent{ExceptionalEvent: ev, CurrentImpact: impact})
		}
	}
	return out, nil
}

// Ack devolve a fala associada a uma categoria de desfecho.
func Ack(outcome string) string {
	if a, ok := acks[outcome]; ok {
		return a
	}
	return AckFallback
}
