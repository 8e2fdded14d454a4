// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANSSI-FR/packetweaver/option"
)

func echoDescriptor() *Descriptor {
	return &Descriptor{
		Name: "test-echo",
		Main: func(ctx context.Context, inst *Instance, opts *option.Set) (any, error) {
			count := 0
			for {
				msg, ok, err := inst.Recv(ctx)
				if err != nil || !ok {
					return count, err
				}
				if inst.Send(msg) == nil {
					count++
				}
			}
		},
	}
}

func sourceDescriptor(values [][]byte) *Descriptor {
	return &Descriptor{
		Name: "test-source",
		Main: func(ctx context.Context, inst *Instance, opts *option.Set) (any, error) {
			for _, v := range values {
				if err := inst.Send(v); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	}
}

func TestInstanceAtMostOnceStart(t *testing.T) {
	desc := &Descriptor{Name: "noop", Main: func(ctx context.Context, inst *Instance, opts *option.Set) (any, error) {
		return nil, nil
	}}
	inst := NewInstance(desc)
	ctx := context.Background()

	require.NoError(t, inst.Start(ctx))
	inst.Wait()

	err := inst.Start(ctx)
	assert.Error(t, err)
}

func TestInstanceChainTransfersMessages(t *testing.T) {
	src := NewInstance(sourceDescriptor([][]byte{[]byte("one"), []byte("two")}))
	sink := NewInstance(echoDescriptor())
	Chain(src, sink)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, StartMany(ctx, src, sink))
	src.Wait()
	sink.Stop()
	sink.Wait()

	assert.True(t, src.IsSource())
	assert.True(t, sink.IsSink())

	result, err := sink.Result()
	require.NoError(t, err)
	assert.Equal(t, 2, result)
}

func TestInstancePollReportsReadiness(t *testing.T) {
	src := NewInstance(sourceDescriptor([][]byte{[]byte("x")}))
	sink := NewInstance(echoDescriptor())
	Chain(src, sink)

	ctx := context.Background()
	require.NoError(t, src.Start(ctx))
	src.Wait()

	ready, err := sink.Poll(ctx, 200*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestInstanceStopCancelsMain(t *testing.T) {
	desc := &Descriptor{Name: "blocking", Main: func(ctx context.Context, inst *Instance, opts *option.Set) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	inst := NewInstance(desc)
	ctx := context.Background()
	require.NoError(t, inst.Start(ctx))

	inst.Stop()
	inst.Wait()

	_, err := inst.Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInstanceSendWithoutOutputPipe(t *testing.T) {
	inst := NewInstance(&Descriptor{Name: "x"})
	err := inst.Send([]byte("a"))
	assert.ErrorIs(t, err, ErrNoOutputPipe)
}

func TestInstanceRecvWithoutInputPipe(t *testing.T) {
	inst := NewInstance(&Descriptor{Name: "x"})
	_, _, err := inst.Recv(context.Background())
	assert.ErrorIs(t, err, ErrNoInputPipe)
}

func TestInstanceTeardownClosesInputPipesToo(t *testing.T) {
	desc := &Descriptor{Name: "no-recv", Main: func(ctx context.Context, inst *Instance, opts *option.Set) (any, error) {
		return nil, nil
	}}
	inst := NewInstance(desc)
	in := NewPipe(DefaultPipeBuffer)
	inst.AddInPipe(in)

	require.NoError(t, inst.Start(context.Background()))
	inst.Wait()

	assert.True(t, in.IsClosed(), "exiting instance must close its input pipes so upstream producers do not block forever")
}

func TestInstanceSpanIDIsUniquePerRun(t *testing.T) {
	a := NewInstance(&Descriptor{Name: "x"})
	b := NewInstance(&Descriptor{Name: "x"})
	assert.NotEmpty(t, a.SpanID())
	assert.NotEqual(t, a.SpanID(), b.SpanID())
}
