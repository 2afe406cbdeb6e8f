package fixtures_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacheck/tacheck/fixtures"
	"github.com/tacheck/tacheck/query"
	"github.com/tacheck/tacheck/ta"
)

func TestAllComponentsCompile(t *testing.T) {
	for _, c := range fixtures.All() {
		t.Run(c.Name, func(t *testing.T) {
			_, err := ta.Compile(c, 0)
			require.NoError(t, err)
		})
	}
}

func TestScenarios(t *testing.T) {
	ld := fixtures.Loader()
	for _, sc := range fixtures.Scenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			q, err := query.Parse(sc.QueryText)
			require.NoError(t, err)

			_, err = query.Run(q, ld)
			if sc.Holds {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
