package main

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/BielosX/wombat/pokenat/src/bundle"
	"github.com/BielosX/wombat/pokenat/src/csv"
	"github.com/BielosX/wombat/pokenat/src/parquet"
	"github.com/BielosX/wombat/pokenat/src/s3"
	"go.uber.org/zap"
)

type ScheduleRequest struct {
	PageSize    int32 `json:"pageSize"`
	StartOffset int32 `json:"startOffset"`
	PageCount   int32 `json:"pageCount"`
}

type Schedule struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

type ScraperResult struct {
	ParquetFileName string `json:"parquetFileName"`
	CsvFileName     string `json:"csvFileName"`
	JsonFileName    string `json:"jsonFileName"`
	PokemonCount    int    `json:"pokemonCount"`
}

// scraper builds dataset pages and publishes them to S3.
type scraper struct {
	builder  *bundle.Builder
	s3Client *s3.Client
	sugar    *zap.SugaredLogger
}

func (s *scraper) scheduleTasks(request ScheduleRequest) ([]Schedule, error) {
	s.sugar.Infof("Starting Schedule Tasks Handler, pageSize: %d, startOffset: %d, pageCount: %d",
		request.PageSize,
		request.StartOffset,
		request.PageCount)
	return scheduleTasks(request), nil
}

func scheduleTasks(request ScheduleRequest) []Schedule {
	result := make([]Schedule, 0, request.PageCount)
	for i := int32(0); i < request.PageCount; i++ {
		result = append(result, Schedule{
			Limit:  request.PageSize,
			Offset: request.StartOffset + i*request.PageSize,
		})
	}
	return result
}

func (s *scraper) handleScraping(ctx context.Context, request Schedule) (*ScraperResult, error) {
	s.sugar.Infof("Starting Scrapping Handler, limit: %d offset: %d",
		request.Limit,
		request.Offset)
	if request.Limit < 1 {
		return nil, nil
	}
	firstId := int(request.Offset) + 1
	lastId := int(request.Offset + request.Limit)
	entries, err := s.builder.Build(ctx, firstId, lastId)
	if err != nil {
		s.sugar.Errorf("Failed to build dataset page: %s", err)
		return nil, err
	}
	s.sugar.Infof("Got %d Pokemon results", len(entries))
	if len(entries) == 0 {
		return nil, nil
	}
	pokemonWriter, err := parquet.NewPokedexEntryWriter()
	if err != nil {
		s.sugar.Errorf("Failed to create Parquet Writer: %s", err)
		return nil, err
	}
	csvWriter := csv.NewWriter[parquet.PokedexEntry]()
	if err := csvWriter.WriteHeader(); err != nil {
		return nil, err
	}
	for _, pokemon := range entries {
		for _, entry := range parquet.ToEntries(pokemon) {
			if err := pokemonWriter.Write(&entry); err != nil {
				s.sugar.Errorf("Error writing Pokemon %s to Parquet: %s", entry.Name, err)
				return nil, err
			}
			if err := csvWriter.Write(entry); err != nil {
				s.sugar.Errorf("Error writing Pokemon %s to CSV: %s", entry.Name, err)
				return nil, err
			}
		}
	}
	if err := pokemonWriter.Finish(); err != nil {
		return nil, err
	}
	if err := csvWriter.Finish(); err != nil {
		return nil, err
	}
	jsonData, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	result := &ScraperResult{
		ParquetFileName: s3.PageKey(firstId, lastId, "parquet"),
		CsvFileName:     s3.PageKey(firstId, lastId, "csv"),
		JsonFileName:    s3.PageKey(firstId, lastId, "json"),
		PokemonCount:    len(entries),
	}
	s.sugar.Infof("Sending parquet file of size %d to S3", pokemonWriter.Size())
	if err := s.s3Client.PutFile(ctx, pokemonWriter.BufferReader(), result.ParquetFileName, "application/vnd.apache.parquet"); err != nil {
		return nil, err
	}
	s.sugar.Infof("Sending CSV file of size %d to S3", csvWriter.Size())
	if err := s.s3Client.PutFile(ctx, csvWriter.BufferReader(), result.CsvFileName, "text/csv"); err != nil {
		return nil, err
	}
	s.sugar.Infof("Sending JSON file of size %d to S3", len(jsonData))
	if err := s.s3Client.PutFile(ctx, bytes.NewReader(jsonData), result.JsonFileName, "application/json"); err != nil {
		return nil, err
	}
	return result, nil
}
