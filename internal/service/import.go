package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"formora/internal/aggregate"
	"formora/internal/formora"
	"formora/internal/model"
	"formora/internal/repository"
	"formora/internal/storage"
)

var tracer = otel.Tracer("formora/internal/service")

// snapshotURLExpiry bounds the lifetime of presigned snapshot links.
const snapshotURLExpiry = 24 * time.Hour

// ImportRequest is the input of one import run.
// TemplateID zero imports every template visible to the token.
type ImportRequest struct {
	APIToken   string
	TemplateID int64
	Operator   string
}

// ImportResult summarizes what an import run stored.
type ImportResult struct {
	Records     int    `json:"records"`
	Templates   int    `json:"templates"`
	Questions   int    `json:"questions"`
	SnapshotKey string `json:"snapshot_key,omitempty"`
	SnapshotURL string `json:"snapshot_url,omitempty"`
}

// ImportService pulls submissions from Formora and stores per-question statistics.
type ImportService interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

// ImportOption configures optional collaborators of the import service.
type ImportOption func(*importService)

// WithSnapshotStore archives every fetched payload in store before aggregation.
func WithSnapshotStore(store storage.Storage) ImportOption {
	return func(s *importService) { s.store = store }
}

// WithImportMetrics reports import outcomes to m.
func WithImportMetrics(m *ImportMetrics) ImportOption {
	return func(s *importService) { s.metrics = m }
}

// WithClock overrides the time source used for last_sync and snapshot keys.
func WithClock(now func() time.Time) ImportOption {
	return func(s *importService) { s.now = now }
}

type importService struct {
	client    formora.Client
	templates repository.TemplateRepository
	questions repository.QuestionRepository
	store     storage.Storage
	metrics   *ImportMetrics
	log       *logrus.Entry
	now       func() time.Time
}

// NewImportService constructs a new ImportService.
func NewImportService(
	client formora.Client,
	templates repository.TemplateRepository,
	questions repository.QuestionRepository,
	log *logrus.Entry,
	opts ...ImportOption,
) ImportService {
	s := &importService{
		client:    client,
		templates: templates,
		questions: questions,
		log:       log.WithField("component", "import"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *importService) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	ctx, span := tracer.Start(ctx, "import",
		trace.WithAttributes(attribute.Int64("formora.template_filter", req.TemplateID)))
	defer span.End()

	res, err := s.run(ctx, req)
	outcome := outcomeOf(err)
	s.metrics.observeOutcome(outcome)

	span.SetAttributes(attribute.String("formora.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetAttributes(
			attribute.Int("formora.records", res.Records),
			attribute.Int("formora.templates", res.Templates),
		)
	}
	return res, err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrTokenRequired), errors.Is(err, ErrInvalidTemplateID):
		return OutcomeInvalid
	case errors.Is(err, ErrNoData):
		return OutcomeNoData
	case errors.Is(err, formora.ErrAPIUnavailable):
		return OutcomeUpstream
	default:
		return OutcomeError
	}
}

func (s *importService) run(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if req.APIToken == "" {
		return nil, ErrTokenRequired
	}
	if req.TemplateID < 0 {
		return nil, ErrInvalidTemplateID
	}

	log := s.log.WithField("template_filter", req.TemplateID)

	records, err := s.client.FetchSubmissions(ctx, req.APIToken, req.TemplateID)
	if err != nil {
		log.WithError(err).Warn("formora fetch failed")
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	now := s.now().UTC()
	result := &ImportResult{Records: len(records)}

	if s.store != nil {
		key, err := s.archive(ctx, records, now)
		if err != nil {
			return nil, fmt.Errorf("archive snapshot: %w", err)
		}
		result.SnapshotKey = key
	}

	for _, group := range aggregate.GroupByTemplate(records) {
		n, err := s.importTemplate(ctx, group, req, now)
		if err != nil {
			return nil, s.rollbackSnapshot(ctx, result.SnapshotKey,
				fmt.Errorf("import template %d: %w", group.TemplateID, err))
		}
		result.Templates++
		result.Questions += n
	}

	if result.SnapshotKey != "" {
		u, err := s.store.PresignGet(ctx, result.SnapshotKey, snapshotURLExpiry)
		if err != nil {
			log.WithError(err).Warn("presign snapshot failed")
		} else {
			result.SnapshotURL = u
		}
	}

	log.WithFields(logrus.Fields{
		"records":   result.Records,
		"templates": result.Templates,
		"questions": result.Questions,
	}).Info("import finished")
	return result, nil
}

// importTemplate stores one template group and returns how many questions it touched.
func (s *importService) importTemplate(ctx context.Context, g aggregate.TemplateGroup, req ImportRequest, now time.Time) (int, error) {
	ctx, span := tracer.Start(ctx, "import.template",
		trace.WithAttributes(attribute.Int64("formora.template_id", g.TemplateID)))
	defer span.End()

	tpl, err := s.templates.FindByRemoteID(ctx, g.TemplateID)
	if errors.Is(err, sql.ErrNoRows) {
		tpl, err = s.templates.Create(ctx, &model.Template{
			RemoteID: g.TemplateID,
			Title:    fmt.Sprintf("Template %d", g.TemplateID),
			Author:   g.Author,
			Owner:    req.Operator,
		})
	}
	if err != nil {
		return 0, fmt.Errorf("get or create template: %w", err)
	}

	questions := aggregate.GroupByQuestion(g.Records)
	for _, qg := range questions {
		if err := s.importQuestion(ctx, tpl.ID, qg); err != nil {
			return 0, fmt.Errorf("question %d: %w", qg.QuestionID, err)
		}
	}

	if err := s.templates.MarkSynced(ctx, tpl.ID, now, req.APIToken); err != nil {
		return 0, fmt.Errorf("mark synced: %w", err)
	}
	return len(questions), nil
}

func (s *importService) importQuestion(ctx context.Context, templateID int64, qg aggregate.QuestionGroup) error {
	q, err := s.questions.FindByRemoteID(ctx, templateID, qg.QuestionID)
	if errors.Is(err, sql.ErrNoRows) {
		q, err = s.questions.Create(ctx, &model.Question{
			TemplateID:  templateID,
			RemoteID:    qg.QuestionID,
			Text:        qg.Text,
			Type:        qg.Type,
			ShowInTable: qg.ShowInTable,
		})
	}
	if err != nil {
		return fmt.Errorf("get or create question: %w", err)
	}

	// Aggregation follows the type reported by the API in this run.
	res := aggregate.Compute(qg)
	s.metrics.observeQuestion(res.Apply, res.Skipped)
	if res.Skipped > 0 {
		s.log.WithFields(logrus.Fields{
			"question_id": qg.QuestionID,
			"skipped":     res.Skipped,
		}).Debug("answers excluded from statistics")
	}
	if !res.Apply {
		return nil
	}

	return s.questions.UpdateStats(ctx, q.ID, res.Stats)
}

func (s *importService) archive(ctx context.Context, records []model.Submission, now time.Time) (string, error) {
	body, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	key := path.Join("imports", now.Format("2006/01/02"), uuid.NewString()+".json")

	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"records": fmt.Sprint(len(records)),
		},
	})
	if err != nil {
		return "", err
	}
	return info.Key, nil
}

// rollbackSnapshot removes the archived payload of a failed import.
func (s *importService) rollbackSnapshot(ctx context.Context, key string, cause error) error {
	if key == "" {
		return cause
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w; snapshot rollback failed: %v", cause, err)
	}
	return cause
}
