package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/blobstore"

	"go.uber.org/zap"
)

// MediaSlot names what an uploaded file is used for.
type MediaSlot string

const (
	MediaGroomPhoto     MediaSlot = "groom"
	MediaBridePhoto     MediaSlot = "bride"
	MediaGallery        MediaSlot = "gallery"
	MediaMusic          MediaSlot = "music"
	MediaThemeThumbnail MediaSlot = "thumbnail"
)

const (
	BucketCouplePhotos    = "couple-photos"
	BucketGalleryPhotos   = "gallery-photos"
	BucketInvitationMusic = "invitation-music"
	BucketThemeThumbnails = "theme-thumbnails"

	MaxImageSize int64 = 2 * 1024 * 1024
	MaxAudioSize int64 = 10 * 1024 * 1024
)

type mediaRule struct {
	bucket     string
	maxSize    int64
	typePrefix string
}

var mediaRules = map[MediaSlot]mediaRule{
	MediaGroomPhoto:     {BucketCouplePhotos, MaxImageSize, "image/"},
	MediaBridePhoto:     {BucketCouplePhotos, MaxImageSize, "image/"},
	MediaGallery:        {BucketGalleryPhotos, MaxImageSize, "image/"},
	MediaMusic:          {BucketInvitationMusic, MaxAudioSize, "audio/"},
	MediaThemeThumbnail: {BucketThemeThumbnails, MaxImageSize, "image/"},
}

type UploadServiceError string

func (e UploadServiceError) Error() string { return string(e) }

const (
	ErrFileTooLarge        UploadServiceError = "ukuran file melebihi batas"
	ErrUnsupportedFileType UploadServiceError = "jenis file tidak didukung"
	ErrUnknownMediaSlot    UploadServiceError = "jenis media tidak dikenal"
	ErrUploadFailed        UploadServiceError = "gagal mengunggah file"
	ErrMediaDeleteFailed   UploadServiceError = "gagal menghapus file"
	ErrStorageDisabled     UploadServiceError = "penyimpanan file belum dikonfigurasi"
	ErrMediaNotOwned       UploadServiceError = "file bukan milik pengguna ini"
)

// UploadFile is one file taken from a multipart form.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type IUploadService interface {
	Upload(ctx context.Context, ownerID string, slot MediaSlot, file UploadFile) (string, error)
	Delete(ctx context.Context, slot MediaSlot, publicURL string) error
	DeleteOwned(ctx context.Context, ownerID string, slot MediaSlot, publicURL string) error
	Enabled() bool
}

type UploadService struct {
	store blobstore.Store
	now   func() time.Time

	mu       sync.Mutex
	lastMark int64
}

// NewUploadService wraps store. A nil store disables uploads.
func NewUploadService(store blobstore.Store) *UploadService {
	return &UploadService{store: store, now: time.Now}
}

func (s *UploadService) Enabled() bool { return s.store != nil }

// BucketFor returns the bucket a slot is stored in.
func BucketFor(slot MediaSlot) (string, bool) {
	rule, ok := mediaRules[slot]
	return rule.bucket, ok
}

// ValidateUpload checks a file against the slot's size and type rules.
func ValidateUpload(slot MediaSlot, file UploadFile) error {
	_, err := checkFile(slot, file)
	return err
}

func checkFile(slot MediaSlot, file UploadFile) (mediaRule, error) {
	rule, ok := mediaRules[slot]
	if !ok {
		return rule, ErrUnknownMediaSlot
	}
	if file.Size > rule.maxSize {
		return rule, fmt.Errorf("%w: maksimal %d MB", ErrFileTooLarge, rule.maxSize/(1024*1024))
	}
	if !strings.HasPrefix(strings.ToLower(file.ContentType), rule.typePrefix) {
		return rule, fmt.Errorf("%w: %s", ErrUnsupportedFileType, file.ContentType)
	}
	return rule, nil
}

func objectKey(ownerID string, slot MediaSlot, filename string, mark int64) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s-%d.%s", ownerID, slot, mark, ext)
}

// nextMark returns the current unix millis, bumped past the previous mark so
// files uploaded within the same millisecond get distinct keys.
func (s *UploadService) nextMark() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	mark := s.now().UnixMilli()
	if mark <= s.lastMark {
		mark = s.lastMark + 1
	}
	s.lastMark = mark
	return mark
}

// Upload checks the file and stores it, returning its public URL.
func (s *UploadService) Upload(ctx context.Context, ownerID string, slot MediaSlot, file UploadFile) (string, error) {
	rule, err := checkFile(slot, file)
	if err != nil {
		return "", err
	}
	if s.store == nil {
		return "", ErrStorageDisabled
	}

	key := objectKey(ownerID, slot, file.Filename, s.nextMark())
	publicURL, err := s.store.Put(ctx, rule.bucket, key, file.ContentType, file.Body, file.Size)
	if err != nil {
		configslog.Log.Error("UploadService.Upload failed", zap.String("bucket", rule.bucket), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	configslog.SLog.Infof("Uploaded %s/%s", rule.bucket, key)
	return publicURL, nil
}

// keyFromURL extracts the object key following "/<bucket>/" in the URL.
// Without that marker the last path segment is used.
func keyFromURL(bucket, publicURL string) string {
	p := publicURL
	if u, err := url.Parse(publicURL); err == nil && u.Path != "" {
		p = u.Path
	}
	marker := "/" + bucket + "/"
	if i := strings.Index(p, marker); i >= 0 {
		return p[i+len(marker):]
	}
	return path.Base(p)
}

// Delete removes the object behind publicURL. Empty URLs are ignored.
func (s *UploadService) Delete(ctx context.Context, slot MediaSlot, publicURL string) error {
	return s.delete(ctx, "", slot, publicURL)
}

// DeleteOwned is Delete restricted to objects stored under ownerID's prefix.
func (s *UploadService) DeleteOwned(ctx context.Context, ownerID string, slot MediaSlot, publicURL string) error {
	if ownerID == "" {
		return ErrMediaNotOwned
	}
	return s.delete(ctx, ownerID, slot, publicURL)
}

func (s *UploadService) delete(ctx context.Context, ownerID string, slot MediaSlot, publicURL string) error {
	if publicURL == "" {
		return nil
	}
	rule, ok := mediaRules[slot]
	if !ok {
		return ErrUnknownMediaSlot
	}
	if s.store == nil {
		return ErrStorageDisabled
	}
	key := keyFromURL(rule.bucket, publicURL)
	if key == "" || key == "." || key == "/" {
		return nil
	}
	if ownerID != "" && (!strings.HasPrefix(key, ownerID+"/") || strings.Contains(key, "..")) {
		configslog.Log.Warn("UploadService.Delete refused foreign key", zap.String("owner_id", ownerID), zap.String("bucket", rule.bucket), zap.String("key", key))
		return ErrMediaNotOwned
	}
	if err := s.store.Delete(ctx, rule.bucket, key); err != nil {
		configslog.Log.Error("UploadService.Delete failed", zap.String("bucket", rule.bucket), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMediaDeleteFailed, err)
	}
	return nil
}

var _ IUploadService = (*UploadService)(nil)
