package mapper

import (
	"encoding/json"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/model"

	"gorm.io/datatypes"
)

type IngestionRunMapper struct{}

func NewIngestionRunMapper() *IngestionRunMapper {
	return &IngestionRunMapper{}
}

func (m *IngestionRunMapper) ToEntity(r *model.IngestionRun) *entity.IngestionRun {
	if r == nil {
		return nil
	}

	var stats entity.RunStats
	if len(r.Stats) > 0 {
		_ = json.Unmarshal(r.Stats, &stats)
	}

	return &entity.IngestionRun{
		Id:            r.Id,
		TenantId:      r.TenantId,
		RunId:         r.RunId,
		SourceId:      r.SourceId,
		CorpusVersion: r.CorpusVersion,
		Status:        r.Status,
		Error:         r.Error,
		Stats:         stats,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
	}
}

func (m *IngestionRunMapper) ToModel(r *entity.IngestionRun) *model.IngestionRun {
	if r == nil {
		return nil
	}

	stats, _ := json.Marshal(r.Stats)

	return &model.IngestionRun{
		Id:            r.Id,
		TenantId:      r.TenantId,
		RunId:         r.RunId,
		SourceId:      r.SourceId,
		CorpusVersion: r.CorpusVersion,
		Status:        r.Status,
		Error:         r.Error,
		Stats:         datatypes.JSON(stats),
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
	}
}

func (m *IngestionRunMapper) ToEntities(models []*model.IngestionRun) []*entity.IngestionRun {
	entities := make([]*entity.IngestionRun, len(models))
	for i, r := range models {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

type IngestionReportMapper struct{}

func NewIngestionReportMapper() *IngestionReportMapper {
	return &IngestionReportMapper{}
}

func (m *IngestionReportMapper) ToEntity(r *model.IngestionReport) *entity.IngestionReport {
	if r == nil {
		return nil
	}

	var counts entity.ReportCounts
	if len(r.Counts) > 0 {
		_ = json.Unmarshal(r.Counts, &counts)
	}

	return &entity.IngestionReport{
		Id:            r.Id,
		TenantId:      r.TenantId,
		CorpusVersion: r.CorpusVersion,
		SourceArchive: r.SourceArchive,
		Counts:        counts,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *IngestionReportMapper) ToModel(r *entity.IngestionReport) *model.IngestionReport {
	if r == nil {
		return nil
	}

	counts, _ := json.Marshal(r.Counts)

	return &model.IngestionReport{
		Id:            r.Id,
		TenantId:      r.TenantId,
		CorpusVersion: r.CorpusVersion,
		SourceArchive: r.SourceArchive,
		Counts:        datatypes.JSON(counts),
		CreatedAt:     r.CreatedAt,
	}
}

func (m *IngestionReportMapper) ToEntities(models []*model.IngestionReport) []*entity.IngestionReport {
	entities := make([]*entity.IngestionReport, len(models))
	for i, r := range models {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
