package merge_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sqlmerge/io/merge"
	"github.com/viant/sqlmerge/io/merge/config"
	"github.com/viant/sqlmerge/moption"
	"github.com/viant/sqlmerge/option"
)

type Profile struct {
	Id      int    `sqlx:"name=Id,autoincrement"`
	Code    string `sqlx:"Code,explicitKey"`
	Name    string `sqlx:"Name"`
	Version int    `sqlx:"Version"`
}

func (p *Profile) TableName() string {
	return "dbo.MergeProfile"
}

var profileDDL = []string{
	"IF OBJECT_ID('dbo.MergeProfile', 'U') IS NOT NULL DROP TABLE dbo.MergeProfile",
	"CREATE TABLE dbo.MergeProfile (Id INT IDENTITY(1,1) PRIMARY KEY, Code NVARCHAR(32) NOT NULL UNIQUE, Name NVARCHAR(100) NULL, Version INT NOT NULL DEFAULT 0)",
}

//runScenarios exercises merge semantics against a live SQL Server database
func runScenarios(t *testing.T, db *sql.DB) {
	ctx := context.Background()
	for _, SQL := range profileDDL {
		_, err := db.ExecContext(ctx, SQL)
		require.Nil(t, err, SQL)
	}
	service := merge.New(db, option.Verify(false))
	byCode := moption.WithKeyColumns("Code")

	var useCases = []struct {
		description string
		seed        []*Profile
		records     []*Profile
		options     []moption.Option
		upsert      bool
		affected    int64
		expect      map[string]*Profile
	}{
		{
			description: "upsert new records inserts all",
			records:     []*Profile{{Code: "A", Name: "a"}, {Code: "B", Name: "b"}, {Code: "C", Name: "c"}},
			options:     []moption.Option{byCode},
			upsert:      true,
			affected:    3,
			expect:      map[string]*Profile{"A": {Name: "a"}, "B": {Name: "b"}, "C": {Name: "c"}},
		},
		{
			description: "upsert single record updates existing row",
			seed:        []*Profile{{Code: "A", Name: "a"}},
			records:     []*Profile{{Code: "A", Name: "a"}},
			options:     []moption.Option{byCode},
			upsert:      true,
			affected:    1,
			expect:      map[string]*Profile{"A": {Name: "a"}},
		},
		{
			description: "guarded update with insert",
			seed:        []*Profile{{Code: "A", Name: "a", Version: 1}, {Code: "B", Name: "b", Version: 1}, {Code: "C", Name: "c", Version: 5}},
			records:     []*Profile{{Code: "A", Name: "a2", Version: 2}, {Code: "B", Name: "b2", Version: 2}, {Code: "C", Name: "c2", Version: 4}, {Code: "D", Name: "d", Version: 1}},
			options: []moption.Option{
				byCode,
				moption.WithMatched(func(action *config.Action) { action.Update().When("Target.Version < Source.Version") }),
				moption.WithNotMatchedByTarget(func(action *config.Action) { action.Insert() }),
			},
			affected: 3,
			expect: map[string]*Profile{
				"A": {Name: "a2", Version: 2},
				"B": {Name: "b2", Version: 2},
				"C": {Name: "c", Version: 5},
				"D": {Name: "d", Version: 1},
			},
		},
		{
			description: "delete rows missing from source",
			seed:        []*Profile{{Code: "A"}, {Code: "B"}, {Code: "C"}, {Code: "D"}, {Code: "E"}},
			records:     []*Profile{{Code: "B"}, {Code: "D"}},
			options: []moption.Option{
				byCode,
				moption.WithNotMatchedBySource(func(action *config.Action) { action.Delete() }),
			},
			affected: 3,
			expect:   map[string]*Profile{"B": {}, "D": {}},
		},
	}

	for _, useCase := range useCases {
		_, err := db.ExecContext(ctx, "DELETE FROM dbo.MergeProfile")
		require.Nil(t, err, useCase.description)
		if len(useCase.seed) > 0 {
			_, err = service.Upsert(ctx, useCase.seed, byCode)
			require.Nil(t, err, useCase.description)
		}
		var affected int64
		if useCase.upsert {
			affected, err = service.Upsert(ctx, useCase.records, useCase.options...)
		} else {
			affected, err = service.Merge(ctx, useCase.records, useCase.options...)
		}
		require.Nil(t, err, useCase.description)
		assert.EqualValues(t, useCase.affected, affected, useCase.description)

		actual := readProfiles(t, db)
		assert.Len(t, actual, len(useCase.expect), useCase.description)
		for code, expect := range useCase.expect {
			profile, ok := actual[code]
			if !assert.True(t, ok, useCase.description+" "+code) {
				continue
			}
			assert.EqualValues(t, expect.Name, profile.Name, useCase.description+" "+code)
			assert.EqualValues(t, expect.Version, profile.Version, useCase.description+" "+code)
		}
	}
}

func readProfiles(t *testing.T, db *sql.DB) map[string]*Profile {
	rows, err := db.QueryContext(context.Background(), "SELECT Id, Code, COALESCE(Name, ''), Version FROM dbo.MergeProfile")
	require.Nil(t, err)
	defer rows.Close()
	var result = map[string]*Profile{}
	for rows.Next() {
		profile := &Profile{}
		require.Nil(t, rows.Scan(&profile.Id, &profile.Code, &profile.Name, &profile.Version))
		result[profile.Code] = profile
	}
	require.Nil(t, rows.Err())
	return result
}
