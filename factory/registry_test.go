// SPDX-License-Identifier: GPL-3.0-or-later

package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANSSI-FR/packetweaver/ability"
	"github.com/ANSSI-FR/packetweaver/option"
)

func fakeDescriptor() *ability.Descriptor {
	return &ability.Descriptor{
		Name:    "fake",
		Package: "testpkg",
		Type:    ability.Standalone,
		Options: []option.Descriptor{
			option.NewString("msg", option.WithStringDefault("hi")),
		},
		Main: func(ctx context.Context, inst *ability.Instance, opts *option.Set) (any, error) {
			v, err := opts.Get("msg", true, false)
			return v, err
		},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))

	err := r.Register(fakeDescriptor())
	assert.ErrorIs(t, err, ErrDuplicateAbility)

	assert.Contains(t, r.Names(), "fake")
	assert.Contains(t, r.StandaloneNames(), "fake")
}

func TestRegistryUnknownAbility(t *testing.T) {
	r := New()
	_, err := r.GetAbility("testpkg", "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownAbility)
}

func TestRegistryGetAbilityRejectsPackageMismatch(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))
	_, err := r.GetAbility("otherpkg", "fake", nil)
	assert.ErrorIs(t, err, ErrUnknownAbility)
}

func TestRegistryDefaultOptionsApplied(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))
	require.NoError(t, r.SetDefaultOptions("fake", map[string]any{"msg": "configured"}))

	inst, err := r.GetAbility("testpkg", "fake", nil)
	require.NoError(t, err)

	require.NoError(t, inst.Start(context.Background()))
	inst.Wait()

	result, err := inst.Result()
	require.NoError(t, err)
	assert.Equal(t, "configured", result)
}

func TestRegistryGetAbilityOverridesWinOverDefaults(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))
	require.NoError(t, r.SetDefaultOptions("fake", map[string]any{"msg": "configured"}))

	inst, err := r.GetAbility("testpkg", "fake", map[string]any{"msg": "overridden"})
	require.NoError(t, err)

	require.NoError(t, inst.Start(context.Background()))
	inst.Wait()

	result, err := inst.Result()
	require.NoError(t, err)
	assert.Equal(t, "overridden", result)
}

func TestRegistryGetAbilitySilentlyDropsUnknownOverrides(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))

	inst, err := r.GetAbility("testpkg", "fake", map[string]any{"bogus": "x"})
	require.NoError(t, err)

	require.NoError(t, inst.Start(context.Background()))
	inst.Wait()

	result, err := inst.Result()
	require.NoError(t, err)
	assert.Equal(t, "hi", result)
}

func TestRegistryGetDependencyResolvesByAlias(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))

	desc := &ability.Descriptor{
		Depends: []ability.Dependency{
			{Alias: "fake-dep", Package: "testpkg", Ability: "fake"},
		},
	}

	inst, err := r.GetDependency(desc, "fake-dep", map[string]any{"msg": "from-dependency"})
	require.NoError(t, err)

	require.NoError(t, inst.Start(context.Background()))
	inst.Wait()

	result, err := inst.Result()
	require.NoError(t, err)
	assert.Equal(t, "from-dependency", result)
}

func TestRegistryGetDependencyUnknownAlias(t *testing.T) {
	r := New()
	desc := &ability.Descriptor{}
	_, err := r.GetDependency(desc, "nope", nil)
	assert.ErrorIs(t, err, ability.ErrUnknownDependency)
}

func TestRegistrySetDefaultOptionsRejectsUnknown(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))
	err := r.SetDefaultOptions("fake", map[string]any{"bogus": "x"})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestRegistryReloadIsNoop(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeDescriptor()))
	assert.NoError(t, r.Reload("fake"))
	assert.ErrorIs(t, r.Reload("nope"), ErrUnknownAbility)
}
