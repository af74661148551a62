package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/maps"
)

// Level runs the script of one map: the enemy queue, player lives and
// respawns, powerup drops, scoring and the win and loss conditions.
type Level struct {
	w *World
	m *maps.Map

	queue       []maps.Enemy
	next        int // Next queue position to request
	alive       int // Enemies alive or spawning
	killed      int
	spawnTimer  int
	spawnCursor int

	lives        int
	playerTier   Tier
	respawnTimer int

	cleared bool
	over    bool
}

// NewLevel builds the world for m and wires the level script into it.
func NewLevel(w *World, m *maps.Map, lives int) *Level {
	l := &Level{
		w:          w,
		m:          m,
		queue:      m.Enemies,
		lives:      lives,
		spawnTimer: w.cfg.Enemy.FirstSpawnDelayTicks,
	}
	w.scripts = append(w.scripts, l)

	bus := w.Bus()
	bus.Subscribe(EventEnemySpawnRequested, l.onEnemySpawnRequested)
	bus.Subscribe(EventSpawnCompleted, l.onSpawnCompleted)
	bus.Subscribe(EventTankDied, l.onTankDied)
	bus.Subscribe(EventPowerupPicked, l.onPowerupPicked)
	bus.Subscribe(EventBaseDestroyed, l.onBaseDestroyed)

	l.startPlayerSpawn()
	return l
}

// Cleared reports whether every queued enemy has been destroyed.
func (l *Level) Cleared() bool { return l.cleared }

// Over reports whether the base fell or the player ran out of lives.
func (l *Level) Over() bool { return l.over }

// Lives returns the remaining player lives, the current tank included.
func (l *Level) Lives() int { return l.lives }

// EnemiesLeft returns how many queued enemies are not yet destroyed.
func (l *Level) EnemiesLeft() int { return len(l.queue) - l.killed }

// PlayerTier returns the tier the player's tank has or will respawn with.
func (l *Level) PlayerTier() Tier { return l.playerTier }

func (l *Level) update(w *World) {
	if l.cleared || l.over {
		return
	}

	if l.spawnTimer > 0 {
		l.spawnTimer--
	}
	if l.spawnTimer == 0 && l.next < len(l.queue) && l.alive < w.cfg.Enemy.MaxAlive {
		w.outbox.Push(EnemySpawnRequested{Index: l.next})
		l.next++
		l.alive++
		l.spawnTimer = w.cfg.Enemy.SpawnDelayTicks
	}

	if l.respawnTimer > 0 {
		l.respawnTimer--
		if l.respawnTimer == 0 {
			l.startPlayerSpawn()
		}
	}
}

func (l *Level) startPlayerSpawn() {
	tile := l.w.cfg.Field.TileSize
	l.w.spawnEffect(EffectSpawn, core.Dims(tile, tile), l.w.cfg.Effects.SpawnTicks, cellCenter(l.m.PlayerSpawn, tile)).
		withPayload(PartyPlayer, l.playerTier, false, -1)
}

func (l *Level) onEnemySpawnRequested(e Event) {
	ev := e.(EnemySpawnRequested)
	enemy := l.queue[ev.Index]
	tier := Tier(max(0, enemy.Tier.Index()))

	spawns := l.m.EnemySpawns
	cell := spawns[l.spawnCursor%len(spawns)]
	l.spawnCursor++

	tile := l.w.cfg.Field.TileSize
	l.w.spawnEffect(EffectSpawn, core.Dims(tile, tile), l.w.cfg.Effects.SpawnTicks, cellCenter(cell, tile)).
		withPayload(PartyEnemy, tier, enemy.Drop, ev.Index)
	l.w.logger.Debug("enemy spawn requested", "index", ev.Index, "tier", tier, "col", cell.Col, "row", cell.Row)
}

func (l *Level) onSpawnCompleted(e Event) {
	ev := e.(SpawnCompleted)
	if l.over {
		return
	}
	t := l.w.spawnTank(ev.Party, ev.Tier, ev.HasDrop, ev.Center)
	if ev.Party == PartyPlayer {
		l.w.shieldTank(t, l.w.cfg.Player.SpawnShieldTicks)
	}
}

func (l *Level) onTankDied(e Event) {
	ev := e.(TankDied)
	if ev.Party == PartyPlayer {
		l.lives--
		l.playerTier = TierA
		if l.lives <= 0 {
			l.lose("lives exhausted")
			return
		}
		l.respawnTimer = max(1, l.w.cfg.Player.RespawnDelayTicks)
		return
	}

	l.alive--
	l.killed++
	if ev.Reason == DeathByBullet {
		l.w.score += l.w.cfg.Enemy.Tiers[min(int(ev.Tier), len(l.w.cfg.Enemy.Tiers)-1)].Points
	}
	if ev.HasDrop {
		l.w.spawnPowerup()
	}
	if l.killed >= len(l.queue) && !l.over {
		l.cleared = true
		l.w.logger.Info("level cleared", "map", l.m.ID, "score", l.w.score, "tick", l.w.tick)
	}
}

func (l *Level) onPowerupPicked(e Event) {
	ev := e.(PowerupPicked)
	w := l.w
	if ev.Type != PowerupWipeout {
		w.score += w.cfg.Powerups.Points
	}

	player := w.Player()
	switch ev.Type {
	case PowerupWipeout:
		for _, t := range w.enemies() {
			w.killTank(t, DeathByWipeout)
		}
	case PowerupFreeze:
		w.frozen = w.cfg.Powerups.FreezeTicks
	case PowerupShield:
		if player != nil {
			w.shieldTank(player, w.cfg.Powerups.ShieldTicks)
		}
	case PowerupUpgrade:
		if player != nil && !player.tier.IsMax() {
			l.playerTier = player.tier.Next()
			tiers := w.cfg.Player.Tiers
			player.setTier(l.playerTier, tiers[min(int(l.playerTier), len(tiers)-1)])
		}
	case PowerupLife:
		l.lives++
	}
	w.logger.Debug("powerup picked", "type", ev.Type, "score", w.score)
}

func (l *Level) onBaseDestroyed(Event) {
	l.lose("base destroyed")
}

func (l *Level) lose(reason string) {
	if l.over {
		return
	}
	l.over = true
	l.w.logger.Info("game over", "reason", reason, "map", l.m.ID, "score", l.w.score, "tick", l.w.tick)
}
