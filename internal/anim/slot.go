package anim

import (
	"fmt"
	"strings"
)

// Slot names a canonical animation by its position in animation.cfg.
type Slot int

const (
	BothDeath1 Slot = iota
	BothDead1
	BothDeath2
	BothDead2
	BothDeath3
	BothDead3

	TorsoGesture
	TorsoAttack
	TorsoAttack2
	TorsoDrop
	TorsoRaise
	TorsoStand
	TorsoStand2

	LegsWalkCr
	LegsWalk
	LegsRun
	LegsBack
	LegsSwim
	LegsJump
	LegsLand
	LegsJumpB
	LegsLandB
	LegsIdle
	LegsIdleCr
	LegsTurn

	NumSlots
)

// legsStart is the first slot of the lower-body group. Its frame numbers
// continue after the torso group in the file.
const legsStart = LegsWalkCr

var slotNames = [NumSlots]string{
	"BOTH_DEATH1", "BOTH_DEAD1", "BOTH_DEATH2", "BOTH_DEAD2", "BOTH_DEATH3", "BOTH_DEAD3",
	"TORSO_GESTURE", "TORSO_ATTACK", "TORSO_ATTACK2", "TORSO_DROP", "TORSO_RAISE",
	"TORSO_STAND", "TORSO_STAND2",
	"LEGS_WALKCR", "LEGS_WALK", "LEGS_RUN", "LEGS_BACK", "LEGS_SWIM", "LEGS_JUMP",
	"LEGS_LAND", "LEGS_JUMPB", "LEGS_LANDB", "LEGS_IDLE", "LEGS_IDLECR", "LEGS_TURN",
}

func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// Torso reports whether the slot drives the upper body (deaths included).
func (s Slot) Torso() bool { return s.Valid() && s < legsStart }

// Legs reports whether the slot drives the lower body (deaths included).
func (s Slot) Legs() bool { return s.Valid() && (s >= legsStart || s <= BothDead3) }

// ParseSlot maps a canonical name such as "legs_walk" to its slot.
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if strings.EqualFold(n, name) {
			return Slot(i), nil
		}
	}
	return -1, fmt.Errorf("anim: unknown animation %q", name)
}
