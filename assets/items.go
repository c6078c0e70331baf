package assets

import "fringe-client/internal/itemdb"

// Equipment slots of the demo actors, in storage order.
const (
	SlotShoes = iota
	SlotLegs
	SlotBody
	SlotGloves
	SlotHair
	SlotHat
	SlotWeapon
	SlotShield

	NumSlots
)

// Demo item ids.
const (
	ItemBoots itemdb.ItemID = 1001 + iota
	ItemPants
	ItemShirt
	ItemRobe
	ItemGloves
	ItemShortHair
	ItemLongHair
	ItemWizardHat
	ItemTuckedHair
	ItemSword
	ItemShield
	ItemHelmet
	ItemCape
)

var facingAway = []itemdb.Facing{itemdb.FacingUp, itemdb.FacingUpLeft, itemdb.FacingUpRight}

// Items returns the demo item catalog. It exercises every rule kind the
// resolver knows: outright hides, per-item substitutes, AnyItem fallbacks,
// facing-specific ordering and competing anchors.
func Items() *itemdb.Table {
	return itemdb.NewTable(
		itemdb.NewItem(ItemBoots, "Leather Boots").
			WithSprite(itemdb.GenderUnspecified, "sprites/boots.png"),
		itemdb.NewItem(ItemPants, "Cotton Pants").
			WithSprite(itemdb.GenderUnspecified, "sprites/pants.png"),
		itemdb.NewItem(ItemShirt, "Cotton Shirt").
			WithSprite(itemdb.GenderUnspecified, "sprites/shirt.png").
			WithSprite(itemdb.GenderFemale, "sprites/shirt-f.png"),
		// A robe covers the legs from every side.
		itemdb.NewItem(ItemRobe, "Wizard Robe").
			WithSprite(itemdb.GenderUnspecified, "sprites/robe.png").
			Hide(SlotLegs),
		itemdb.NewItem(ItemGloves, "Leather Gloves").
			WithSprite(itemdb.GenderUnspecified, "sprites/gloves.png"),
		itemdb.NewItem(ItemShortHair, "Short Hair").
			WithSprite(itemdb.GenderUnspecified, "sprites/hair-short.png"),
		// Long hair falls over the cape when seen from behind.
		itemdb.NewItem(ItemLongHair, "Long Hair").
			WithSprite(itemdb.GenderUnspecified, "sprites/hair-long.png").
			DrawAfter(SlotShield, 0, facingAway...),
		itemdb.NewItem(ItemWizardHat, "Wizard Hat").
			WithSprite(itemdb.GenderUnspecified, "sprites/wizard-hat.png").
			Replace(SlotHair, ItemLongHair, itemdb.Replacement{Item: ItemTuckedHair}).
			Replace(SlotHair, itemdb.AnyItem, itemdb.Replacement{Hide: true}),
		itemdb.NewItem(ItemTuckedHair, "Tucked Hair").
			WithSprite(itemdb.GenderUnspecified, "sprites/hair-tucked.png"),
		// Weapons are carried on the back when walking away.
		itemdb.NewItem(ItemSword, "Short Sword").
			WithSprite(itemdb.GenderUnspecified, "sprites/sword.png").
			DrawBefore(SlotBody, 1, facingAway...),
		itemdb.NewItem(ItemShield, "Round Shield").
			WithSprite(itemdb.GenderUnspecified, "sprites/shield.png").
			DrawBefore(SlotBody, 2, facingAway...).
			DrawBefore(SlotBody, 0, itemdb.FacingLeft),
		itemdb.NewItem(ItemHelmet, "Iron Helmet").
			WithSprite(itemdb.GenderUnspecified, "sprites/helmet.png").
			Hide(SlotHair),
		// The cape shares the shield slot and hangs behind the body unless
		// seen from behind.
		itemdb.NewItem(ItemCape, "Traveler's Cape").
			WithSprite(itemdb.GenderUnspecified, "sprites/cape.png").
			DrawBefore(SlotShoes, 0, itemdb.FacingDown, itemdb.FacingDownLeft, itemdb.FacingDownRight,
				itemdb.FacingLeft, itemdb.FacingRight, itemdb.FacingDead),
	)
}

// Outfits are the equipment sets the viewer cycles through.
var Outfits = []map[int]itemdb.ItemID{
	{SlotShoes: ItemBoots, SlotLegs: ItemPants, SlotBody: ItemShirt, SlotHair: ItemShortHair},
	{SlotShoes: ItemBoots, SlotLegs: ItemPants, SlotBody: ItemRobe, SlotHair: ItemLongHair, SlotHat: ItemWizardHat},
	{SlotShoes: ItemBoots, SlotLegs: ItemPants, SlotBody: ItemShirt, SlotHair: ItemLongHair, SlotShield: ItemCape},
	{SlotShoes: ItemBoots, SlotLegs: ItemPants, SlotBody: ItemShirt, SlotGloves: ItemGloves,
		SlotHair: ItemShortHair, SlotHat: ItemHelmet, SlotWeapon: ItemSword, SlotShield: ItemShield},
}
