package converter

import (
	"economy_backend/internal/api/dto/giveaway"
	"economy_backend/internal/model"
)

func ToGiveaway(req giveaway.CreateRequest) model.Giveaway {
	return model.Giveaway{
		Prize:        req.Prize,
		Description:  req.Description,
		EndDate:      req.EndDate,
		MediaFileID:  req.MediaFileID,
		MediaType:    req.MediaType,
		WinnersCount: req.WinnersCount,
	}
}

func ToGiveawayResponse(g model.Giveaway) giveaway.GiveawayResponse {
	return giveaway.GiveawayResponse{
		ID:           g.ID,
		Prize:        g.Prize,
		Description:  g.Description,
		EndDate:      g.EndDate,
		MediaFileID:  g.MediaFileID,
		MediaType:    g.MediaType,
		Status:       string(g.Status),
		WinnersCount: g.WinnersCount,
		Winners:      g.Winners,
	}
}

func ToGiveawayResponses(giveaways []model.Giveaway) []giveaway.GiveawayResponse {
	result := make([]giveaway.GiveawayResponse, len(giveaways))
	for i, g := range giveaways {
		result[i] = ToGiveawayResponse(g)
	}
	return result
}

func ToDrawResponse(res model.DrawResult) giveaway.DrawResponse {
	return giveaway.DrawResponse{
		GiveawayID:   res.GiveawayID,
		Winners:      res.Winners,
		Participants: res.Participants,
	}
}
