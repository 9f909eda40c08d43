package v1

import (
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/session"
)

// DTOToSignIn преобразует DTO входа в запрос к сервису сессий.
// Начальный фикс передается только при наличии обеих координат.
func DTOToSignIn(dto SignInRequest, nowMillis int64) session.SignInRequest {
	req := session.SignInRequest{
		UserID:             dto.UserID,
		Email:              dto.Email,
		LocationPermission: dto.LocationPermission,
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		req.InitialFix = &models.Position{
			Latitude:        *dto.Latitude,
			Longitude:       *dto.Longitude,
			TimestampMillis: nowMillis,
		}
	}
	return req
}

func DTOToPosition(dto PositionRequest) models.Position {
	return models.Position{
		Latitude:        *dto.Latitude,
		Longitude:       *dto.Longitude,
		TimestampMillis: dto.TimestampMillis,
	}
}

func positionToResponse(p models.Position) PositionResponse {
	return PositionResponse{
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		TimestampMillis: p.TimestampMillis,
	}
}

func AreaToResponse(a models.MonitoredArea) *AreaResponse {
	return &AreaResponse{
		CenterLatitude:  a.CenterLatitude,
		CenterLongitude: a.CenterLongitude,
		RadiusMeters:    a.RadiusMeters,
	}
}

// SnapshotToResponse преобразует состояние сессии в DTO для ответа
func SnapshotToResponse(snap models.SessionSnapshot) *SessionResponse {
	resp := &SessionResponse{
		UserID: snap.UserID,
		Occupancy: OccupancyResponse{
			IsInside:  snap.Occupancy.IsInside,
			EnteredAt: snap.Occupancy.EnteredAt,
		},
		Followed: make([]FollowedUserResponse, 0, len(snap.Followed)),
	}
	if snap.Position != nil {
		p := positionToResponse(*snap.Position)
		resp.Position = &p
	}
	if snap.Area != nil {
		resp.Area = AreaToResponse(*snap.Area)
	}
	for _, f := range snap.Followed {
		item := FollowedUserResponse{
			UserID:       f.UserID,
			DisplayLabel: f.DisplayLabel,
			Position:     positionToResponse(f.Position),
		}
		if f.DistanceMeters >= 0 {
			d := f.DistanceMeters
			item.DistanceMeters = &d
		}
		resp.Followed = append(resp.Followed, item)
	}
	return resp
}

func ModelToProfileResponse(p *models.UserProfile) *ProfileResponse {
	return &ProfileResponse{
		UID:                     p.UID,
		Email:                   p.Email,
		DisplayName:             p.DisplayName,
		Followers:               p.Followers,
		Following:               p.Following,
		ShareLocationWith:       p.ShareLocationWith,
		PendingLocationRequests: p.PendingLocationRequests,
		LocationRequestsSent:    p.LocationRequestsSent,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

// ModelsToProfileResponses преобразует слайс моделей в слайс DTO
func ModelsToProfileResponses(profiles []*models.UserProfile) []*ProfileResponse {
	responses := make([]*ProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = ModelToProfileResponse(p)
	}
	return responses
}

func ModelsToNotificationResponses(records []*models.NotificationRecord) []*NotificationResponse {
	responses := make([]*NotificationResponse, len(records))
	for i, n := range records {
		responses[i] = &NotificationResponse{
			ID:             n.ID,
			Type:           n.Type,
			Message:        n.Message,
			SenderID:       n.SenderID,
			SenderEmail:    n.SenderEmail,
			DistanceMeters: n.DistanceMeters,
			Read:           n.Read,
			CreatedAt:      n.CreatedAt,
		}
	}
	return responses
}
