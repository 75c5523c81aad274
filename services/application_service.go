package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kissan-konnect-api/config"
	"kissan-konnect-api/models"

	"gorm.io/gorm"
)

// applicationRepo is swapped for a fake in tests.
var applicationRepo applicationWorkflowRepository = &gormApplicationWorkflowRepository{}

type applicationWorkflowRepository interface {
	UserByID(id int) (*models.User, error)
	ProgramByID(id int) (*models.Program, error)
	CropByID(id int) (*models.Crop, error)
	HasInFlightApplication(userID, programID int) (bool, error)
	CreateApplicationWithHistory(app *models.Application, history *models.ApplicationStatusHistory) error
	HasDocumentOfKind(applicationID int, kind string) (bool, error)
	CreateDocument(doc *models.Document) error
	ApplicationByID(id int) (*models.Application, error)
	CountDocuments(applicationID int) (int64, error)
	SaveStatusWithHistory(app *models.Application, history *models.ApplicationStatusHistory) error
}

type gormApplicationWorkflowRepository struct{}

func (r *gormApplicationWorkflowRepository) UserByID(id int) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormApplicationWorkflowRepository) ProgramByID(id int) (*models.Program, error) {
	var program models.Program
	if err := config.DB.First(&program, "program_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *gormApplicationWorkflowRepository) CropByID(id int) (*models.Crop, error) {
	var crop models.Crop
	if err := config.DB.First(&crop, "crop_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

func (r *gormApplicationWorkflowRepository) HasInFlightApplication(userID, programID int) (bool, error) {
	var count int64
	err := config.DB.Model(&models.Application{}).
		Where("user_id = ? AND program_id = ? AND status IN ?",
			userID, programID, []string{models.StatusPending, models.StatusUnderReview}).
		Count(&count).Error
	return count > 0, err
}

func (r *gormApplicationWorkflowRepository) CreateApplicationWithHistory(app *models.Application, history *models.ApplicationStatusHistory) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		history.ApplicationID = app.ApplicationID
		return tx.Create(history).Error
	})
}

func (r *gormApplicationWorkflowRepository) HasDocumentOfKind(applicationID int, kind string) (bool, error) {
	var count int64
	err := config.DB.Model(&models.Document{}).
		Where("application_id = ? AND kind = ?", applicationID, kind).
		Count(&count).Error
	return count > 0, err
}

func (r *gormApplicationWorkflowRepository) CreateDocument(doc *models.Document) error {
	return config.DB.Create(doc).Error
}

func (r *gormApplicationWorkflowRepository) ApplicationByID(id int) (*models.Application, error) {
	var app models.Application
	if err := config.DB.First(&app, "application_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *gormApplicationWorkflowRepository) CountDocuments(applicationID int) (int64, error) {
	var count int64
	err := config.DB.Model(&models.Document{}).
		Where("application_id = ?", applicationID).
		Count(&count).Error
	return count, err
}

func (r *gormApplicationWorkflowRepository) SaveStatusWithHistory(app *models.Application, history *models.ApplicationStatusHistory) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(app).Error; err != nil {
			return err
		}
		return tx.Create(history).Error
	})
}

// CreateApplicationInput is a farmer's submission against a program.
type CreateApplicationInput struct {
	UserID    int
	ProgramID int
	CropID    int
	Acreage   float64
	Season    string
}

// CreateApplication inserts a new pending application together with its
// first history row. At most one in-flight application per (user, program)
// pair may exist; resolved or rejected prior applications do not block
// resubmission. If the farmer registered with an identity document, it is
// linked to the new application as a "Govt ID" document, once.
func CreateApplication(in CreateApplicationInput) (*models.Application, error) {
	if _, err := applicationRepo.ProgramByID(in.ProgramID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Rule: "program_id", Message: "Invalid program"}
		}
		return nil, err
	}
	if _, err := applicationRepo.CropByID(in.CropID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Rule: "crop_id", Message: "Invalid crop"}
		}
		return nil, err
	}

	inFlight, err := applicationRepo.HasInFlightApplication(in.UserID, in.ProgramID)
	if err != nil {
		return nil, err
	}
	if inFlight {
		return nil, ErrConflict
	}

	now := time.Now()
	app := models.Application{
		UserID:      in.UserID,
		ProgramID:   in.ProgramID,
		CropID:      in.CropID,
		Acreage:     in.Acreage,
		Season:      in.Season,
		Status:      models.StatusPending,
		SubmittedAt: now,
	}
	note := "Submitted"
	history := models.ApplicationStatusHistory{
		Status:    models.StatusPending,
		Note:      &note,
		CreatedAt: now,
	}
	if err := applicationRepo.CreateApplicationWithHistory(&app, &history); err != nil {
		return nil, err
	}

	if err := autoLinkIdentityDocument(&app); err != nil {
		return nil, err
	}

	return &app, nil
}

// autoLinkIdentityDocument attaches the farmer's profile document to the new
// application. An existing-document lookup keeps the link idempotent.
func autoLinkIdentityDocument(app *models.Application) error {
	user, err := applicationRepo.UserByID(app.UserID)
	if err != nil {
		return err
	}
	if user.DocPath == nil || strings.TrimSpace(*user.DocPath) == "" {
		return nil
	}

	exists, err := applicationRepo.HasDocumentOfKind(app.ApplicationID, models.KindGovtID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	appID := app.ApplicationID
	userID := app.UserID
	return applicationRepo.CreateDocument(&models.Document{
		Kind:          models.KindGovtID,
		FilePath:      *user.DocPath,
		UserID:        &userID,
		ApplicationID: &appID,
		UploadedAt:    time.Now(),
	})
}

// TransitionInput is an admin's status decision on an application.
type TransitionInput struct {
	ApplicationID int
	Target        string
	Remarks       *string
	Score         *float64
	AdminID       int
}

// transitionSnapshot is the read-only state the approval gates inspect.
// Every gate runs against this snapshot before anything is written.
type transitionSnapshot struct {
	Application   models.Application
	Program       models.Program
	Applicant     models.User
	DocumentCount int64
}

// TransitionApplication applies an admin status change. All gates are
// evaluated first; on success the status field and the history row are
// committed as one unit.
func TransitionApplication(in TransitionInput) (*models.Application, error) {
	app, err := applicationRepo.ApplicationByID(in.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	program, err := applicationRepo.ProgramByID(app.ProgramID)
	if err != nil {
		return nil, err
	}
	applicant, err := applicationRepo.UserByID(app.UserID)
	if err != nil {
		return nil, err
	}
	docCount, err := applicationRepo.CountDocuments(app.ApplicationID)
	if err != nil {
		return nil, err
	}

	snap := transitionSnapshot{
		Application:   *app,
		Program:       *program,
		Applicant:     *applicant,
		DocumentCount: docCount,
	}
	if verr := checkTransition(in.Target, in.Remarks, snap); verr != nil {
		return nil, verr
	}

	app.Status = in.Target
	app.Remarks = in.Remarks
	if in.Score != nil {
		app.Score = in.Score
	}

	adminID := in.AdminID
	history := models.ApplicationStatusHistory{
		ApplicationID: app.ApplicationID,
		Status:        in.Target,
		Note:          in.Remarks,
		ByAdminID:     &adminID,
		CreatedAt:     time.Now(),
	}
	if err := applicationRepo.SaveStatusWithHistory(app, &history); err != nil {
		return nil, err
	}

	return app, nil
}

// checkTransition holds every business rule for admin status changes in one
// place, as pure precondition logic over the snapshot. It returns the first
// violated rule, or nil when the transition may proceed.
func checkTransition(target string, remarks *string, snap transitionSnapshot) *ValidationError {
	switch target {
	case models.StatusUnderReview:
		return nil

	case models.StatusPending:
		return &ValidationError{
			Rule:    "status",
			Message: "Cannot move an application back to pending",
		}

	case models.StatusRejected:
		if remarks == nil || strings.TrimSpace(*remarks) == "" {
			return &ValidationError{
				Rule:    "remarks",
				Message: "Remarks are required to reject an application",
			}
		}
		return nil

	case models.StatusApproved:
		acreage := snap.Application.Acreage
		if snap.Program.MinLandSize != nil && acreage < *snap.Program.MinLandSize {
			return &ValidationError{
				Rule:    "min_land_size",
				Message: fmt.Sprintf("Acreage %.2f is below the program minimum of %.2f acres", acreage, *snap.Program.MinLandSize),
			}
		}
		if snap.Program.MaxLandSize != nil && acreage > *snap.Program.MaxLandSize {
			return &ValidationError{
				Rule:    "max_land_size",
				Message: fmt.Sprintf("Acreage %.2f exceeds the program maximum of %.2f acres", acreage, *snap.Program.MaxLandSize),
			}
		}
		if snap.Program.Season != "" && snap.Program.Season != models.SeasonAny &&
			snap.Program.Season != snap.Application.Season {
			return &ValidationError{
				Rule:    "season",
				Message: fmt.Sprintf("Application season %s does not match program season %s", snap.Application.Season, snap.Program.Season),
			}
		}
		if snap.Applicant.Aadhar == nil || strings.TrimSpace(*snap.Applicant.Aadhar) == "" {
			return &ValidationError{
				Rule:    "identity",
				Message: "Identity missing: applicant has no national ID on file",
			}
		}
		if snap.DocumentCount == 0 {
			return &ValidationError{
				Rule:    "documents",
				Message: "No supporting documents uploaded for this application",
			}
		}
		return nil

	default:
		return &ValidationError{Rule: "status", Message: "Unknown status"}
	}
}
