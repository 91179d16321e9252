package db

import (
	"database/sql"

	"github.com/gridscan/raster-audit/audit"
	"github.com/gridscan/raster-audit/util"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

const insertMessageStatement = `
	INSERT INTO public.metadata_report
	(model_id, satellite_type, acquisition_time, sensor_type, sensor_angle, resolution,
	 can_open, is_corrupted, is_spectrum_missing, has_rpc, has_rpb, cloud_cover)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const insertLackStatement = `
	INSERT INTO public.lack_report
	(model_id, sensor_type, sensor_angle, resolution)
	VALUES ($1, $2, $3, $4)`

// ReportStore persists both report tables to Postgres. Each run
// replaces the previous run's rows inside one transaction.
type ReportStore struct {
	Provider ConnectionProvider
}

// Store implements audit.Sink
func (s ReportStore) Store(ctx util.LogContext, tables *audit.Tables) error {
	database, err := s.Provider(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	tx, err := database.Begin()
	if err != nil {
		return err
	}

	if err = replaceReports(tx, tables); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func replaceReports(tx *sql.Tx, tables *audit.Tables) error {
	if _, err := tx.Exec(`DELETE FROM public.metadata_report`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM public.lack_report`); err != nil {
		return err
	}

	messageStmt, err := tx.Prepare(insertMessageStatement)
	if err != nil {
		return err
	}
	defer messageStmt.Close()
	for _, record := range tables.Records {
		_, err = messageStmt.Exec(
			record.Meta.ModelID,
			record.Meta.SatelliteType,
			record.Meta.AcquisitionTime,
			record.Meta.SensorType,
			record.Meta.SensorAngle,
			record.Meta.Resolution,
			record.Quality.CanOpen,
			record.Quality.IsCorrupted,
			record.Quality.IsSpectrumMissing,
			record.Quality.HasRPC,
			record.Quality.HasRPB,
			record.CloudCover,
		)
		if err != nil {
			return err
		}
	}

	lackStmt, err := tx.Prepare(insertLackStatement)
	if err != nil {
		return err
	}
	defer lackStmt.Close()
	for _, lack := range tables.Lacks {
		if _, err = lackStmt.Exec(lack.ModelID, lack.SensorType, lack.SensorAngle, lack.Resolution); err != nil {
			return err
		}
	}
	return nil
}
