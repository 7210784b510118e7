package cmd

import (
	"context"

	"github.com/JustAGod1/wifi-dumper/sink"
)

// newRedisSink connects to the profile's Redis and checks it answers, so a
// misconfigured address fails before the router is contacted.
func newRedisSink(ctx context.Context, p *profile) (sink.Sink, func() error, error) {
	opts := p.redisOptions()
	opts.Password = cfgRedisPassword
	r := sink.NewRedis(opts)
	pingCtx := ctx
	if cfgConnTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfgConnTimeout)
		defer cancel()
	}
	if err := r.Ping(pingCtx); err != nil {
		_ = r.Close()
		return nil, nil, err
	}
	return r, r.Close, nil
}
