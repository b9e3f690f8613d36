package model

// DonationType is the kind of donation a request or donor is about.
type DonationType string

const (
	DonationTypeBlood  DonationType = "Blood"
	DonationTypeOrgan  DonationType = "Organ"
	DonationTypeTissue DonationType = "Tissue"
)

func (t DonationType) Valid() bool {
	switch t {
	case DonationTypeBlood, DonationTypeOrgan, DonationTypeTissue:
		return true
	}
	return false
}

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

// BloodTypes lists every blood type in inventory display order.
var BloodTypes = []BloodType{
	BloodTypeAPos, BloodTypeANeg, BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg, BloodTypeOPos, BloodTypeONeg,
}

func (b BloodType) Valid() bool {
	for _, t := range BloodTypes {
		if t == b {
			return true
		}
	}
	return false
}

type Organ string

const (
	OrganKidney    Organ = "Kidney"
	OrganLiver     Organ = "Liver"
	OrganHeart     Organ = "Heart"
	OrganLung      Organ = "Lung"
	OrganPancreas  Organ = "Pancreas"
	OrganIntestine Organ = "Intestine"
)

var Organs = []Organ{OrganKidney, OrganLiver, OrganHeart, OrganLung, OrganPancreas, OrganIntestine}

func (o Organ) Valid() bool {
	for _, v := range Organs {
		if v == o {
			return true
		}
	}
	return false
}

type Tissue string

const (
	TissueCornea     Tissue = "Cornea"
	TissueSkin       Tissue = "Skin"
	TissueBone       Tissue = "Bone"
	TissueHeartValve Tissue = "Heart Valve"
	TissueTendon     Tissue = "Tendon"
)

var Tissues = []Tissue{TissueCornea, TissueSkin, TissueBone, TissueHeartValve, TissueTendon}

func (t Tissue) Valid() bool {
	for _, v := range Tissues {
		if v == t {
			return true
		}
	}
	return false
}
