package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

// Up00001 creates both report tables.
func Up00001(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE public.metadata_report
	(
		model_id text COLLATE pg_catalog."default" NOT NULL,
		satellite_type text NOT NULL,
		acquisition_time text NOT NULL,
		sensor_type text NOT NULL,
		sensor_angle text NOT NULL,
		resolution text NOT NULL,
		can_open boolean NOT NULL,
		is_corrupted boolean NOT NULL,
		is_spectrum_missing boolean NOT NULL,
		has_rpc boolean NOT NULL,
		has_rpb boolean NOT NULL,
		cloud_cover text NOT NULL
	)
	WITH (
		OIDS = FALSE
	);

	CREATE TABLE public.lack_report
	(
		model_id text COLLATE pg_catalog."default" NOT NULL,
		sensor_type text NOT NULL,
		sensor_angle text NOT NULL,
		resolution text NOT NULL
	)
	WITH (
		OIDS = FALSE
	);

	CREATE INDEX idx_metadata_report_model_id
	ON public.metadata_report (model_id);
	`)
	return err
}

// Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE IF EXISTS public.metadata_report;
	DROP TABLE IF EXISTS public.lack_report;
	`)
	return err
}
