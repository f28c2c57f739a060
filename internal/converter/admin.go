package converter

import (
	"economy_backend/internal/api/dto/admin"
	"economy_backend/internal/model"
)

func ToBanEntry(req admin.BanRequest, bannedBy int64) model.BanEntry {
	return model.BanEntry{
		UserID:   req.UserID,
		BannedBy: bannedBy,
		Reason:   req.Reason,
	}
}

func ToBanResponses(entries []model.BanEntry) []admin.BanResponse {
	result := make([]admin.BanResponse, len(entries))
	for i, e := range entries {
		result[i] = admin.BanResponse{
			UserID:     e.UserID,
			BannedBy:   e.BannedBy,
			BannedDate: e.BannedDate,
			Reason:     e.Reason,
		}
	}
	return result
}
