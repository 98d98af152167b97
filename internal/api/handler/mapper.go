package handler

import (
	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// --- Request → Service input ---

func toSubmitInput(req submitApplicationRequest) ports.SubmitApplicationInput {
	return ports.SubmitApplicationInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		CategoryID:      req.CategoryID,
		CityID:          req.CityID,
		BusinessName:    req.BusinessName,
		Description:     req.Description,
		ExperienceYears: req.ExperienceYears,
		Specialties:     req.Specialties,
	}
}

func toUpdateArtisanInput(req updateArtisanRequest) ports.UpdateArtisanInput {
	return ports.UpdateArtisanInput{
		BusinessName:      req.BusinessName,
		Description:       req.Description,
		Address:           req.Address,
		PortfolioImages:   req.PortfolioImages,
		ServiceRadiusKm:   req.ServiceRadiusKm,
		ResponseTimeHours: req.ResponseTimeHours,
	}
}

func toNotificationInput(req createNotificationRequest) ports.CreateNotificationInput {
	return ports.CreateNotificationInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Data:    req.Data,
	}
}

func toContactInput(req contactMessageRequest) ports.ContactMessageInput {
	return ports.ContactMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
}

// --- Service result → HTTP response ---

func toListApplicationsResponse(r *ports.ListApplicationsResult) listApplicationsResponse {
	items := r.Items
	if items == nil {
		items = []*domain.Application{}
	}
	return listApplicationsResponse{
		Items:    items,
		pageMeta: pageMeta{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages},
	}
}

func toListArtisansResponse(r *ports.ListArtisansResult) listArtisansResponse {
	items := r.Items
	if items == nil {
		items = []*domain.ArtisanListing{}
	}
	return listArtisansResponse{
		Items:    items,
		pageMeta: pageMeta{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages},
	}
}

func toEventResponses(events []*domain.ApplicationEvent) []applicationEventResponse {
	out := make([]applicationEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, applicationEventResponse{
			Action:     string(e.Action),
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			AdminID:    e.AdminID,
			AdminNotes: e.AdminNotes,
			OccurredAt: e.OccurredAt.UTC(),
		})
	}
	return out
}
