package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/dto"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/httpresp"
	"github.com/campus-wellbeing/counsel-api/internal/imaging"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

// AvatarStore holds counsellor avatars.
type AvatarStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	URL(ctx context.Context, key string) (string, error)
}

type CounsellorHandler struct {
	db    *gorm.DB
	store AvatarStore
	audit *audit.Dispatcher
	log   *zap.Logger
}

// NewCounsellorHandler accepts a nil store; avatars are then neither
// served nor accepted.
func NewCounsellorHandler(
	db *gorm.DB,
	store AvatarStore,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CounsellorHandler {
	return &CounsellorHandler{
		db:    db,
		store: store,
		audit: audit,
		log:   log,
	}
}

func (h *CounsellorHandler) entry(ctx context.Context, u *models.User) dto.CounsellorEntry {
	e := dto.CounsellorEntry{
		ID:             u.ID,
		Name:           u.Name,
		Specialization: u.Specialization,
		IsActive:       u.IsActive,
	}
	if h.store != nil && u.AvatarKey != "" {
		url, err := h.store.URL(ctx, u.AvatarKey)
		if err != nil {
			h.log.Warn("avatar url failed", zap.String("key", u.AvatarKey), zap.Error(err))
		} else {
			e.AvatarURL = url
		}
	}
	return e
}

func (h *CounsellorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var users []models.User
	if err := h.db.WithContext(ctx).
		Where("role = ?", models.RoleCounsellor).
		Order("name ASC").
		Find(&users).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	out := make([]dto.CounsellorEntry, 0, len(users))
	for i := range users {
		out = append(out, h.entry(ctx, &users[i]))
	}
	httpresp.List(c, out)
}

func (h *CounsellorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var u models.User
	if err := h.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleCounsellor).
		First(&u).Error; err != nil {
		if httperr.IsKind(httperr.FromStore(err), httperr.KindNotFound) {
			err = httperr.NotFound("counsellor_not_found")
		}
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, h.entry(ctx, &u))
}

// UploadAvatar stores the multipart "avatar" image as a 512px WebP.
func (h *CounsellorHandler) UploadAvatar(c *gin.Context) {
	if h.store == nil {
		httperr.Respond(c, h.log, httperr.Unavailable("storage_unavailable"))
		return
	}

	fh, err := c.FormFile("avatar")
	if err != nil || fh.Size > imaging.MaxUploadSize {
		httperr.Respond(c, h.log, httperr.Validation("invalid_image"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, h.log, httperr.Validation("invalid_image"))
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadSize+1))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	webp, err := imaging.EncodeAvatar(raw)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Validation("invalid_image"))
		return
	}

	ctx := c.Request.Context()
	actor := middleware.Actor(c)
	key := "avatars/" + actor.ID.String() + ".webp"

	if err := h.store.Put(ctx, key, "image/webp", webp); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var u models.User
	if err := h.db.WithContext(ctx).First(&u, "id = ?", actor.ID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if err := h.db.WithContext(ctx).
		Model(&u).
		Update("avatar_key", key).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	u.AvatarKey = key

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "avatar_updated",
		Entity:   "user",
		EntityID: &actor.ID,
		Metadata: map[string]any{"key": key, "bytes": len(webp)},
	})

	httpresp.OK(c, h.entry(ctx, &u))
}
