package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// The database and collection handles must exist once Init has run, before
// any Start executes: Starts run concurrently and impose no ordering, so a
// handle resolved there could be read from a still-nil client.
func TestHandlesResolveDuringInit(t *testing.T) {
	dir := t.TempDir()
	conf := NewDbConfig(&dir)
	require.NoError(t, conf.Init())

	d := New(conf)
	require.NoError(t, d.Init())
	require.NotNil(t, d.Client)

	instance := NewDbInstance(d, "daowatchdog")
	require.NoError(t, instance.Init())
	require.NotNil(t, instance.Database)

	records := NewCollection(instance, "reconciliations")
	require.NoError(t, records.Init())
	require.NotNil(t, records.Collection)

	ctx := context.Background()
	_, err := d.Start().Await(ctx)
	require.NoError(t, err)
	_, err = instance.Start().Await(ctx)
	require.NoError(t, err)
	_, err = records.Start().Await(ctx)
	require.NoError(t, err)

	require.NoError(t, records.Stop())
	require.NoError(t, instance.Stop())
	require.NoError(t, d.Stop())
}
