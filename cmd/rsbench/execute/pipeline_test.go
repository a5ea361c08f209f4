package execute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineTemplate(t *testing.T) {
	template, err := Command("seq", "{n}").
		Pipe("sort", "-R").
		Pipe("head", "-n", "{k}").
		RedirectTo("/dev/null").
		Template()
	require.NoError(t, err)
	assert.Equal(t, "seq {n} | sort -R | head -n {k} > /dev/null", template)

	names, err := Placeholders(template)
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "k"}, names)
}

func TestPipelineQuoting(t *testing.T) {
	template, err := Command("awk", "{print $1}").Pipe("grep", "it's here").Template()
	require.NoError(t, err)
	assert.Equal(t, `awk '{{print $1}}' | grep 'it'\''s here'`, template)

	names, err := Placeholders(template)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPipelineInvalid(t *testing.T) {
	_, err := (&Pipeline{}).Template()
	assert.Error(t, err)

	_, err = Command("seq", "3").Pipe().Template()
	assert.Error(t, err)
}

func TestPipelineRoundTrip(t *testing.T) {
	executor, _ := newTestExecutor(t)

	template, err := Command("printf", "%s", "it's {weird}; $HOME").RedirectTo("{output}").Template()
	require.NoError(t, err)

	output, err := executor.Execute(context.Background(), template, Params{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "it's {weird}; $HOME", readFile(t, output))
}

type sampleSchema struct {
	N       int    `mapstructure:"n" validate:"gt=0"`
	Program string `mapstructure:"program" validate:"required,shellword"`
	Output  string `mapstructure:"output,omitempty"`
}

func TestParamsFrom(t *testing.T) {
	params, err := ParamsFrom(sampleSchema{N: 10, Program: "./rsampling"})
	require.NoError(t, err)
	assert.Equal(t, 10, params["n"])
	assert.Equal(t, "./rsampling", params["program"])
	assert.NotContains(t, params, OutputKey)

	params, err = ParamsFrom(&sampleSchema{N: 1, Program: "shuf", Output: "/tmp/out"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", params[OutputKey])
}

func TestParamsFromRejectsInvalidSchema(t *testing.T) {
	_, err := ParamsFrom(sampleSchema{N: 0, Program: "shuf"})
	assert.ErrorContains(t, err, "Invalid command parameters")

	_, err = ParamsFrom(sampleSchema{N: 1, Program: "shuf; rm -rf /"})
	assert.ErrorContains(t, err, "shellword")
}
