package catalog

import (
	"context"
	"fmt"

	"imexspec/pkg/platform/sentinel"
)

// InMemoryStore serves the built-in catalog. It is the development default and
// the baseline the postgres store is seeded from.
type InMemoryStore struct {
	items map[Category][]Item
}

// NewInMemoryStore builds a store populated with the full built-in catalog.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: builtinCatalog()}
}

func (s *InMemoryStore) List(_ context.Context, category Category) ([]Item, error) {
	items, ok := s.items[category]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", category, sentinel.ErrNotFound)
	}
	return append([]Item{}, items...), nil
}

func (s *InMemoryStore) FindByCode(_ context.Context, category Category, code string) (Item, error) {
	for _, item := range s.items[category] {
		if item.Code == code {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("code %q in %q: %w", code, category, sentinel.ErrNotFound)
}

func (s *InMemoryStore) FindByImexCode(_ context.Context, category Category, imexCode string) (Item, error) {
	for _, item := range s.items[category] {
		if item.ImexCode == imexCode {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("imex code %q in %q: %w", imexCode, category, sentinel.ErrNotFound)
}

func builtinCatalog() map[Category][]Item {
	return map[Category][]Item{
		CategoryValveModels: {
			{Code: "ESFERA", ImexCode: "TRUF", Label: "Esfera - Trunnion Full Bore"},
			{Code: "ESFERA_RED", ImexCode: "TRUR", Label: "Esfera - Trunnion Reduced Bore"},
			{Code: "ESFERA_FLOAT", ImexCode: "FL3F", Label: "Esfera - Floating 3-Piece"},
			{Code: "GAVETA", ImexCode: "GVSC", Label: "Gaveta - Gate Valve Slab"},
			{Code: "GAVETA_EXP", ImexCode: "GVEX", Label: "Gaveta - Expanding Gate"},
			{Code: "GLOBO", ImexCode: "GLBY", Label: "Globo - Globe Y-Pattern"},
			{Code: "GLOBO_ANG", ImexCode: "GLBA", Label: "Globo - Globe Angle"},
			{Code: "RETENCAO", ImexCode: "CHKS", Label: "Retenção - Check Swing"},
			{Code: "RETENCAO_PIST", ImexCode: "CHKP", Label: "Retenção - Check Piston"},
			{Code: "BORBOLETA", ImexCode: "BTFL", Label: "Borboleta - Butterfly"},
			{Code: "CONTROLE", ImexCode: "CTRL", Label: "Controle - Control Valve"},
		},
		CategoryEndConnections: {
			{Code: "FLANGEADO", ImexCode: "FRE", Label: "Flangeado - RF/RTJ Ends"},
			{Code: "FLANGEADO_RF", ImexCode: "FRF", Label: "Flangeado - Raised Face"},
			{Code: "FLANGEADO_RTJ", ImexCode: "RTJ", Label: "Flangeado - Ring Type Joint"},
			{Code: "FLANGEADO_FF", ImexCode: "FFF", Label: "Flangeado - Flat Face"},
			{Code: "BW", ImexCode: "BWE", Label: "BW - Butt Weld Ends"},
			{Code: "SW", ImexCode: "SOW", Label: "SW - Socket Weld"},
			{Code: "NPT", ImexCode: "NIP", Label: "NPT - Rosqueado (Threaded)"},
			{Code: "WAFER", ImexCode: "WAF", Label: "Wafer"},
			{Code: "LUG", ImexCode: "LUG", Label: "Lug"},
		},
		CategoryBodyMaterials: {
			{Code: "ASTM_A216_WCB", ImexCode: "WCB", Label: "ASTM A216 WCB - Aço Carbono"},
			{Code: "ASTM_A352_LCB", ImexCode: "LCB", Label: "ASTM A352 LCB - Baixa Temperatura"},
			{Code: "ASTM_A352_LCC", ImexCode: "LCC", Label: "ASTM A352 LCC - Baixa Temperatura"},
			{Code: "ASTM_A351_CF8M", ImexCode: "36L", Label: "ASTM A351 CF8M - Inox 316"},
			{Code: "ASTM_A351_CF3M", ImexCode: "36L", Label: "ASTM A351 CF3M - Inox 316L"},
			{Code: "ASTM_A995_4A", ImexCode: "F55", Label: "ASTM A995 4A - Duplex"},
			{Code: "ASTM_A995_5A", ImexCode: "F55", Label: "ASTM A995 5A - Super Duplex"},
			{Code: "ASTM_A995_6A", ImexCode: "F55", Label: "ASTM A995 6A - Super Duplex"},
			{Code: "ASTM_A105", ImexCode: "A15", Label: "ASTM A105 - Aço Carbono Forjado"},
			{Code: "ASTM_A182_F316", ImexCode: "36L", Label: "ASTM A182 F316 - Inox 316 Forjado"},
			{Code: "ASTM_A182_F304", ImexCode: "34L", Label: "ASTM A182 F304 - Inox 304 Forjado"},
			{Code: "ASTM_A890_4A", ImexCode: "F55", Label: "ASTM A890 4A - Duplex"},
			{Code: "INCONEL_625", ImexCode: "I25", Label: "Inconel 625"},
			{Code: "MONEL_400", ImexCode: "M40", Label: "Monel 400"},
		},
		CategoryTrimMaterials: {
			{Code: "PTFE_PTFE", ImexCode: "D2D2PE", Label: "PTFE / PTFE"},
			{Code: "RPTFE_RPTFE", ImexCode: "D2D2RP", Label: "RPTFE / RPTFE"},
			{Code: "PEEK_PEEK", ImexCode: "A2A2PK", Label: "PEEK / PEEK"},
			{Code: "METAL_METAL", ImexCode: "M1STST", Label: "Metal-Metal (Stellite)"},
			{Code: "ENP_ENP", ImexCode: "A2A2RC", Label: "ENP / ENP - Nickel Plating"},
			{Code: "INCONEL_INCONEL", ImexCode: "M1ININ", Label: "Inconel / Inconel"},
			{Code: "STELLITE_STELLITE", ImexCode: "M1STST", Label: "Stellite / Stellite"},
			{Code: "NYLON_NYLON", ImexCode: "D2D2NY", Label: "Nylon / Nylon"},
			{Code: "DEVLON_DEVLON", ImexCode: "D2D2DV", Label: "Devlon / Devlon"},
			{Code: "GRAFITE_GRAFITE", ImexCode: "A2A2GR", Label: "Grafite / Grafite"},
		},
		CategorySeatMaterials: {
			{Code: "PTFE", ImexCode: "PT", Label: "PTFE"},
			{Code: "RPTFE", ImexCode: "RP", Label: "RPTFE (Reforçado)"},
			{Code: "PEEK", ImexCode: "PK", Label: "PEEK"},
			{Code: "METAL", ImexCode: "MT", Label: "Metal-Metal"},
			{Code: "STELLITE", ImexCode: "ST", Label: "Stellite"},
			{Code: "ENP", ImexCode: "EP", Label: "ENP (Nickel Plating)"},
			{Code: "INCONEL", ImexCode: "IN", Label: "Inconel"},
			{Code: "NYLON", ImexCode: "NY", Label: "Nylon"},
			{Code: "DEVLON", ImexCode: "DV", Label: "Devlon"},
			{Code: "GRAFITE", ImexCode: "GR", Label: "Grafite"},
		},
		CategoryStemMaterials: {
			{Code: "ASTM_A182_F6A", ImexCode: "F6A", Label: "ASTM A182 F6a - Inox 410"},
			{Code: "ASTM_A182_F316", ImexCode: "316", Label: "ASTM A182 F316 - Inox 316"},
			{Code: "ASTM_A182_F51", ImexCode: "F51", Label: "ASTM A182 F51 - Duplex"},
			{Code: "ASTM_A182_F53", ImexCode: "F53", Label: "ASTM A182 F53 - Super Duplex"},
			{Code: "INCONEL_625", ImexCode: "I25", Label: "Inconel 625"},
			{Code: "MONEL_K500", ImexCode: "K50", Label: "Monel K500"},
		},
		CategoryActuationCodes: {
			{Code: "MANUAL", ImexCode: "0L0000", Label: "Manual - Sem atuador"},
			{Code: "MANUAL_GEAR", ImexCode: "0L538M", Label: "Manual - Com redutor (Gearbox)"},
			{Code: "PNEUMATICO_SA", ImexCode: "1V4GB7", Label: "Pneumático - Single Acting"},
			{Code: "PNEUMATICO_DA", ImexCode: "1V4GBD", Label: "Pneumático - Double Acting"},
			{Code: "ELETRICO", ImexCode: "0L6GL7", Label: "Elétrico"},
			{Code: "HIDRAULICO", ImexCode: "0L7HY1", Label: "Hidráulico"},
			{Code: "ELETRO_HIDRAULICO", ImexCode: "0L8EH1", Label: "Eletro-Hidráulico"},
		},
		CategorySuffixes: {
			{Code: "NEW", ImexCode: "NEW", Label: "Novo - Padrão"},
			{Code: "FS", ImexCode: "FS", Label: "Fire Safe (Testada a Fogo)"},
			{Code: "LFE", ImexCode: "LFE", Label: "Low Fugitive Emission"},
			{Code: "NACE", ImexCode: "NACE", Label: "NACE MR0175 / ISO 15156"},
			{Code: "SIL1", ImexCode: "SIL1", Label: "SIL 1 Certified"},
			{Code: "SIL2", ImexCode: "SIL2", Label: "SIL 2 Certified"},
			{Code: "SIL3", ImexCode: "SIL3", Label: "SIL 3 Certified"},
			{Code: "CRY", ImexCode: "CRY", Label: "Cryogenic Service"},
			{Code: "HT", ImexCode: "HT", Label: "High Temperature"},
		},
		CategoryPressureClasses: {
			{Code: "150", ImexCode: "1", Label: "Class 150"},
			{Code: "300", ImexCode: "3", Label: "Class 300"},
			{Code: "600", ImexCode: "6", Label: "Class 600"},
			{Code: "800", ImexCode: "8", Label: "Class 800"},
			{Code: "900", ImexCode: "A", Label: "Class 900"},
			{Code: "1500", ImexCode: "B", Label: "Class 1500"},
			{Code: "2500", ImexCode: "Y", Label: "Class 2500"},
		},
		CategoryDiameterOptions: {
			{Code: "0.5", ImexCode: "005", Label: `1/2"`},
			{Code: "0.75", ImexCode: "008", Label: `3/4"`},
			{Code: "1", ImexCode: "010", Label: `1"`},
			{Code: "1.5", ImexCode: "015", Label: `1 1/2"`},
			{Code: "2", ImexCode: "020", Label: `2"`},
			{Code: "3", ImexCode: "030", Label: `3"`},
			{Code: "4", ImexCode: "040", Label: `4"`},
			{Code: "6", ImexCode: "060", Label: `6"`},
			{Code: "8", ImexCode: "080", Label: `8"`},
			{Code: "10", ImexCode: "100", Label: `10"`},
			{Code: "12", ImexCode: "120", Label: `12"`},
			{Code: "14", ImexCode: "140", Label: `14"`},
			{Code: "16", ImexCode: "160", Label: `16"`},
			{Code: "18", ImexCode: "180", Label: `18"`},
			{Code: "20", ImexCode: "200", Label: `20"`},
			{Code: "24", ImexCode: "240", Label: `24"`},
			{Code: "30", ImexCode: "300", Label: `30"`},
			{Code: "36", ImexCode: "360", Label: `36"`},
		},
		CategoryConstructionStandards: {
			{Code: "ABNT_NBR_15827", ImexCode: "NBR", Label: "ABNT NBR 15827 - Válvulas para petróleo e gás"},
			{Code: "API_6D", ImexCode: "6D", Label: "API 6D - Pipeline valves"},
			{Code: "ISO_14313", ImexCode: "ISO", Label: "ISO 14313 - Pipeline valves"},
			{Code: "API_6A", ImexCode: "6A", Label: "API 6A - Wellhead equipment"},
			{Code: "API_600", ImexCode: "600", Label: "API 600 - Steel gate valves"},
			{Code: "API_602", ImexCode: "602", Label: "API 602 - Compact steel gate valves"},
		},
		CategoryFlangeFaces: {
			{Code: "RF", ImexCode: "RF", Label: "RF - Raised Face"},
			{Code: "RTJ", ImexCode: "RJ", Label: "RTJ - Ring Type Joint"},
			{Code: "FF", ImexCode: "FF", Label: "FF - Flat Face"},
		},
	}
}
