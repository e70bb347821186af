package compose

import "jobradar/aggregator-service/internal/model"

// sourceRank encodes the trust hierarchy used to pick a canonical record
// among same-fingerprint duplicates; lower wins. Direct and partner-ATS
// sources beat every reseller of their listings, government boards and
// general aggregators sit in the middle, broad pay-aggregators below them,
// and seed data loses to everything except sources not in the table.
var sourceRank = map[model.Source]int{
	model.SourceManual:          1,
	model.SourceGreenhouse:      2,
	model.SourceLever:           3,
	model.SourceAshby:           4,
	model.SourceRecruitee:       5,
	model.SourceWorkable:        6,
	model.SourceSmartRecruiters: 7,
	model.SourceUSAJobs:         10,
	model.SourceGoogle:          11,
	model.SourceAdzuna:          20,
	model.SourceSeed:            30,
}

const unknownSourceRank = 100

func rankOf(s model.Source) int {
	if r, ok := sourceRank[s]; ok {
		return r
	}
	return unknownSourceRank
}
