package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PreviewInvitationID is the reserved public id that renders sample data.
const PreviewInvitationID = "preview"

type InvitationServiceError string

func (e InvitationServiceError) Error() string { return string(e) }

const (
	ErrInvitationNotFound       InvitationServiceError = "undangan tidak ditemukan"
	ErrInvitationLoadFailed     InvitationServiceError = "gagal memuat undangan"
	ErrInvitationCreationFailed InvitationServiceError = "gagal membuat undangan"
	ErrInvitationSaveFailed     InvitationServiceError = "gagal menyimpan pengaturan undangan"
	ErrInvitationInvalidInput   InvitationServiceError = "data undangan tidak valid"
)

// InvitationView is what the public page needs: the record, its theme (nil
// when the theme is gone) and the template to render.
type InvitationView struct {
	Invitation *models.Invitation
	Theme      *models.Theme
	Template   string
	Preview    bool
}

type IInvitationService interface {
	GetInvitationForUser(ctx context.Context, userID string) (*models.Invitation, error)
	GetInvitationByID(ctx context.Context, id string) (*models.Invitation, error)
	LoadPublicView(ctx context.Context, id string) (*InvitationView, error)
	PreviewView(ctx context.Context, themeRef string) (*InvitationView, error)
	SaveSettings(ctx context.Context, userID string, form SettingsForm, uploads UploadState) (*models.Invitation, error)
	RemoveMedia(ctx context.Context, userID string, slot MediaSlot, url string) (string, error)
}

type InvitationService struct {
	repo      repositories.IInvitationRepository
	userRepo  repositories.IUserRepository
	themeRepo repositories.IThemeRepository
	now       func() time.Time
}

func NewInvitationService() IInvitationService {
	return NewInvitationServiceWith(
		repositories.NewInvitationRepository(),
		repositories.NewUserRepository(),
		repositories.NewThemeRepository(),
		time.Now,
	)
}

func NewInvitationServiceWith(repo repositories.IInvitationRepository, userRepo repositories.IUserRepository, themeRepo repositories.IThemeRepository, now func() time.Time) *InvitationService {
	if now == nil {
		now = time.Now
	}
	return &InvitationService{repo: repo, userRepo: userRepo, themeRepo: themeRepo, now: now}
}

// findForUser returns nil, nil when the user has no invitation yet.
func (s *InvitationService) findForUser(ctx context.Context, userID string) (*models.Invitation, error) {
	inv, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func (s *InvitationService) defaultThemeFor(ctx context.Context, userID string) string {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || !user.HasAssignedTheme() {
		return DefaultThemeID
	}
	return *user.AssignedThemeID
}

// createDefault stores the first-visit invitation. A concurrent request that
// created it first wins and its row is returned.
func (s *InvitationService) createDefault(ctx context.Context, userID string) (*models.Invitation, error) {
	inv := NewDefaultInvitation(userID, s.defaultThemeFor(ctx, userID), s.now())
	if err := s.repo.SaveComplete(ctx, &inv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.repo.FindByUserID(ctx, userID)
		}
		configslog.Log.Error("InvitationService.createDefault failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvitationCreationFailed, err)
	}
	configslog.SLog.Infof("Default invitation created for user %s", userID)
	return &inv, nil
}

// GetInvitationForUser returns the user's invitation, creating the default
// one on first use.
func (s *InvitationService) GetInvitationForUser(ctx context.Context, userID string) (*models.Invitation, error) {
	if userID == "" {
		return nil, ErrInvitationInvalidInput
	}
	inv, err := s.findForUser(ctx, userID)
	if err != nil {
		configslog.Log.Error("InvitationService.GetInvitationForUser failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvitationLoadFailed, err)
	}
	if inv != nil {
		return inv, nil
	}
	return s.createDefault(ctx, userID)
}

func (s *InvitationService) GetInvitationByID(ctx context.Context, id string) (*models.Invitation, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		configslog.Log.Error("InvitationService.GetInvitationByID failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvitationLoadFailed, err)
	}
	return inv, nil
}

// LoadPublicView loads an invitation with its theme and template.
func (s *InvitationService) LoadPublicView(ctx context.Context, id string) (*InvitationView, error) {
	inv, err := s.GetInvitationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &InvitationView{Invitation: inv}
	if inv.ThemeID != "" {
		theme, err := s.themeRepo.FindByID(ctx, inv.ThemeID)
		switch {
		case err == nil:
			view.Theme = theme
		case !errors.Is(err, repositories.ErrNotFound):
			configslog.Log.Warn("Theme lookup failed, using default template", zap.String("theme_id", inv.ThemeID), zap.Error(err))
		}
	}
	slug := ""
	if view.Theme != nil {
		slug = view.Theme.Slug
	}
	view.Template = ResolveTemplate(slug)
	return view, nil
}

// PreviewView renders sample data with the theme given by id or slug.
// Nothing is read from or written to any invitation.
func (s *InvitationService) PreviewView(ctx context.Context, themeRef string) (*InvitationView, error) {
	view := &InvitationView{Preview: true}
	slug := themeRef
	if themeRef != "" {
		theme, err := s.themeRepo.FindByID(ctx, themeRef)
		if errors.Is(err, repositories.ErrNotFound) {
			theme, err = s.themeRepo.FindBySlug(ctx, themeRef)
		}
		if err == nil {
			view.Theme = theme
			slug = theme.Slug
		}
	}
	sample := SampleInvitation(s.now())
	if view.Theme != nil {
		sample.ThemeID = view.Theme.ID
	}
	view.Invitation = &sample
	view.Template = ResolveTemplate(slug)
	return view, nil
}

// SaveSettings reconciles the submission against the stored record and
// persists the result in one transaction.
func (s *InvitationService) SaveSettings(ctx context.Context, userID string, form SettingsForm, uploads UploadState) (*models.Invitation, error) {
	if userID == "" {
		return nil, ErrInvitationInvalidInput
	}
	prior, err := s.findForUser(ctx, userID)
	if err != nil {
		configslog.Log.Error("InvitationService.SaveSettings load failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvitationLoadFailed, err)
	}

	next := Reconcile(form, prior, uploads, s.now())
	next.UserID = userID
	if next.ThemeID == "" {
		next.ThemeID = s.defaultThemeFor(ctx, userID)
	}
	if prior == nil && next.AkadLocation == "" {
		next.AkadLocation = DefaultAkadLocation
		next.SyncLegacyFields()
	}

	if err := s.repo.SaveComplete(ctx, &next); err != nil {
		configslog.Log.Error("InvitationService.SaveSettings failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvitationSaveFailed, err)
	}
	configslog.SLog.Infof("Invitation settings saved for user %s", userID)
	return &next, nil
}

// RemoveMedia clears one media reference and returns the URL that was
// stored there. For the gallery only url is removed, and only when the
// invitation holds it. An empty result means nothing was cleared.
func (s *InvitationService) RemoveMedia(ctx context.Context, userID string, slot MediaSlot, url string) (string, error) {
	inv, err := s.GetInvitationForUser(ctx, userID)
	if err != nil {
		return "", err
	}

	var removed string
	fields := map[string]interface{}{}
	switch slot {
	case MediaGroomPhoto:
		removed = inv.GroomPhotoURL
		fields["groom_photo_url"] = ""
	case MediaBridePhoto:
		removed = inv.BridePhotoURL
		fields["bride_photo_url"] = ""
	case MediaMusic:
		removed = inv.MusicURL
		fields["music_url"] = ""
	case MediaGallery:
		kept := make([]string, 0, len(inv.GalleryPhotos))
		for _, photo := range inv.GalleryPhotos {
			if url != "" && photo == url {
				removed = photo
				continue
			}
			kept = append(kept, photo)
		}
		if removed == "" {
			return "", nil
		}
		inv.GalleryPhotos = kept
		fields["gallery_photos"] = inv.GalleryPhotos
	default:
		return "", fmt.Errorf("%w: slot %q", ErrInvitationInvalidInput, slot)
	}

	if err := s.repo.UpdateFields(ctx, inv.ID, fields); err != nil {
		configslog.Log.Error("InvitationService.RemoveMedia failed", zap.String("user_id", userID), zap.String("slot", string(slot)), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrInvitationSaveFailed, err)
	}
	return removed, nil
}

// SampleInvitation is the canned record shown by the theme preview.
func SampleInvitation(now time.Time) models.Invitation {
	date := now.AddDate(0, 1, 0).Format("2006-01-02")
	inv := models.Invitation{
		BaseModel:        models.BaseModel{ID: PreviewInvitationID},
		EventName:        "Pernikahan Ahmad & Siti",
		ThemeID:          DefaultThemeID,
		OpeningQuote:     "Dan di antara tanda-tanda kebesaran-Nya ialah Dia menciptakan pasangan-pasangan untukmu dari jenismu sendiri. (QS. Ar-Rum: 21)",
		ClosingMessage:   "Merupakan suatu kehormatan dan kebahagiaan bagi kami apabila Bapak/Ibu/Saudara/i berkenan hadir.",
		GroomName:        "Ahmad",
		GroomFullName:    "Ahmad Fauzi",
		GroomTitle:       "S.T.",
		GroomDescription: "Putra pertama",
		GroomFatherName:  "Bapak Hasan",
		GroomMotherName:  "Ibu Aminah",
		BrideName:        "Siti",
		BrideFullName:    "Siti Nurhaliza",
		BrideTitle:       "S.Pd.",
		BrideDescription: "Putri kedua",
		BrideFatherName:  "Bapak Rahman",
		BrideMotherName:  "Ibu Fatimah",
		AkadDate:         date,
		AkadStartTime:    DefaultAkadStartTime,
		AkadEndTime:      DefaultAkadEndTime,
		AkadLocation:     "Masjid Agung Al-Azhar, Jakarta",
		ResepsiDate:      date,
		ResepsiStartTime: DefaultResepsiStartTime,
		ResepsiEndTime:   DefaultResepsiEndTime,
		ResepsiLocation:  "Gedung Serbaguna, Jakarta",
		GalleryPhotos:    []string{},
		LoveStory: []models.LoveStoryMilestone{
			{Title: "Pertama Bertemu", Date: "2019", Description: "Kami bertemu di bangku kuliah.", Icon: DefaultLoveStoryIcons[0], OrderIndex: 0},
			{Title: "Lamaran", Date: "2024", Description: "Keluarga besar bertemu untuk lamaran.", Icon: DefaultLoveStoryIcons[1], OrderIndex: 1},
			{Title: "Pernikahan", Date: now.AddDate(0, 1, 0).Format("2006"), Description: "Hari bahagia kami.", Icon: DefaultLoveStoryIcons[2], OrderIndex: 2},
		},
		BankAccounts: []models.BankAccount{
			{BankName: "BCA", AccountNumber: "1234567890", AccountHolder: "Ahmad Fauzi", OrderIndex: 0},
		},
	}
	inv.SyncLegacyFields()
	return inv
}

var _ IInvitationService = (*InvitationService)(nil)
