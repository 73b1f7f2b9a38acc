package services

import (
	"gorm.io/datatypes"

	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/services/dto"
	"hrcell_backend/pkg/apperrors"
)

type ActivityService interface {
	// Record пишет запись журнала best-effort: ошибка логируется, не возвращается
	Record(entry *models.ActivityLog)
	ListByCompany(companyID string, page, pageSize int) (*dto.ActivityLogListResponse, error)
	// ListGlobal - весь журнал, включая записи вне тенантов (для супер-админа)
	ListGlobal(page, pageSize int) (*dto.ActivityLogListResponse, error)
}

type ActivityServiceImpl struct {
	activityRepo repositories.ActivityRepository
}

func NewActivityService(activityRepo repositories.ActivityRepository) ActivityService {
	return &ActivityServiceImpl{activityRepo: activityRepo}
}

func (s *ActivityServiceImpl) Record(entry *models.ActivityLog) {
	if err := s.activityRepo.Create(entry); err != nil {
		logger.Warn("activity log write failed", "action", entry.Action, "error", err)
	}
}

func (s *ActivityServiceImpl) ListByCompany(companyID string, page, pageSize int) (*dto.ActivityLogListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	logs, total, err := s.activityRepo.FindByCompany(companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toActivityList(logs, total, page, pageSize), nil
}

func (s *ActivityServiceImpl) ListGlobal(page, pageSize int) (*dto.ActivityLogListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	logs, total, err := s.activityRepo.FindGlobal(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toActivityList(logs, total, page, pageSize), nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}
	return page, pageSize
}

func toActivityList(logs []models.ActivityLog, total int64, page, pageSize int) *dto.ActivityLogListResponse {
	resp := &dto.ActivityLogListResponse{
		Logs:     make([]dto.ActivityLogResponse, 0, len(logs)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range logs {
		l := &logs[i]
		resp.Logs = append(resp.Logs, dto.ActivityLogResponse{
			ID:         l.ID,
			CompanyID:  l.CompanyID,
			ActorID:    l.ActorID,
			ActorEmail: l.ActorEmail,
			ActorRole:  string(l.ActorRole),
			Action:     l.Action,
			Entity:     l.Entity,
			EntityID:   l.EntityID,
			Detail:     map[string]interface{}(l.Detail),
			CreatedAt:  formatTime(l.CreatedAt),
		})
	}
	return resp
}

// NewActivityEntry собирает запись журнала из контекста сессии
func NewActivityEntry(actor *models.Session, action, entity, entityID string, detail map[string]interface{}) *models.ActivityLog {
	entry := &models.ActivityLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   datatypes.JSONMap(detail),
	}
	if actor != nil {
		entry.CompanyID = actor.CompanyID
		entry.ActorID = actor.UserID
		entry.ActorEmail = actor.Email
		entry.ActorRole = actor.Role
	}
	return entry
}
