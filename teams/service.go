package teams

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"iotreg/models"
	"iotreg/notify"
	"iotreg/storage"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const documentNamespace = "team-documents"

// Service enforces the registration and review workflow around Team records.
// Notifications are fire-and-forget: they never fail a workflow call.
type Service struct {
	store    *Store
	files    storage.FileStore
	notifier notify.Notifier
}

func NewService(store *Store, files storage.FileStore, notifier notify.Notifier) *Service {
	return &Service{
		store:    store,
		files:    files,
		notifier: notifier,
	}
}

// Register validates a submission, stores the optional document and creates
// the team in pending state. A validation failure commits nothing; a storage
// failure aborts before the record is written.
func (s *Service) Register(ctx context.Context, in *RegistrationInput, doc *multipart.FileHeader) (*models.Team, error) {
	verrs, err := ValidateRegistration(in, doc, func(name string) (bool, error) {
		return s.store.NameExists(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	var documentPath *string
	if doc != nil {
		path, err := s.files.Save(doc, documentNamespace)
		if err != nil {
			return nil, &StorageError{Op: "save", Err: err}
		}
		documentPath = &path
	}

	team := &models.Team{
		TeamName:           in.TeamName,
		SchoolOrigin:       in.SchoolOrigin,
		Major:              in.Major,
		ProjectTitle:       in.ProjectTitle,
		ProjectDescription: in.ProjectDescription,
		TeamMembers:        datatypes.NewJSONSlice(in.TeamMembers),
		DocumentPath:       documentPath,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
		Status:             models.StatusPending,
		RegistrationDate:   time.Now(),
	}

	if err := s.store.Create(ctx, team); err != nil {
		// Don't leave an orphaned document behind a failed insert.
		if documentPath != nil {
			if rerr := s.files.Remove(*documentPath); rerr != nil {
				log.WithField("path", *documentPath).Warnf("could not remove document after failed insert: %v", rerr)
			}
		}
		return nil, err
	}

	s.notifier.Notify(notify.EventRegistrationConfirmation, team,
		"Your team registration has been received and is pending approval.")

	return team, nil
}

// UpdateStatus writes a new review state. Any of the three states may be
// written at any time; only the status field changes.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*models.Team, error) {
	team, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parsed, err := models.ParseTeamStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.store.UpdateStatus(ctx, team, parsed); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.EventStatusUpdate, team, statusMessage(parsed))

	return team, nil
}

func statusMessage(status models.TeamStatus) string {
	switch status {
	case models.StatusApproved:
		return "Congratulations! Your team has been approved for the IoT Competition."
	case models.StatusRejected:
		return "Unfortunately, your team registration has been rejected."
	default:
		return "Your team registration status has been updated."
	}
}

// Delete removes the team and its stored document. A failed file removal is
// logged and the record is deleted anyway; cleanup is at-least-once.
func (s *Service) Delete(ctx context.Context, id uint) error {
	team, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if team.HasDocument() {
		if err := s.files.Remove(team.Document()); err != nil {
			log.WithFields(log.Fields{
				"team_id": team.ID,
				"path":    team.Document(),
			}).Warnf("could not delete team document: %v", err)
		}
	}

	return s.store.Delete(ctx, team)
}

// BroadcastUpdate notifies every approved team of a competition update and
// reports how many were notified.
func (s *Service) BroadcastUpdate(ctx context.Context, message string) (int, error) {
	approved, err := s.store.ApprovedTeams(ctx)
	if err != nil {
		return 0, err
	}

	for i := range approved {
		s.notifier.Notify(notify.EventCompetitionUpdate, &approved[i], message)
	}

	return len(approved), nil
}

// SendReminder nudges a team whose registration is still awaiting review.
func (s *Service) SendReminder(ctx context.Context, id uint) error {
	team, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.notifier.Notify(notify.EventRegistrationReminder, team,
		"Don't forget to complete your IoT Competition registration!")

	return nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Team, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page int) ([]models.Team, int64, error) {
	return s.store.List(ctx, page)
}
