// Package banks holds the fixed table of Venezuelan banks used for
// payment-method records ("pago móvil").
package banks

// Bank identifies a Venezuelan bank by its national code.
type Bank struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Color string `json:"color"`
}

// Venezuela is the supported bank list, in display order.
var Venezuela = []Bank{
	{Code: "0102", Name: "Banco de Venezuela", Logo: "https://upload.wikimedia.org/wikipedia/commons/b/ba/Banco_de_Venezuela_logo.svg", Color: "#BD0000"},
	{Code: "0134", Name: "Banesco", Logo: "https://upload.wikimedia.org/wikipedia/commons/8/86/Banesco_Logo.svg", Color: "#2C8B3E"},
	{Code: "0105", Name: "Banco Mercantil", Logo: "https://upload.wikimedia.org/wikipedia/commons/6/69/Banco_Mercantil_%28Venezuela%29_logo.svg", Color: "#005596"},
	{Code: "0108", Name: "BBVA Provincial", Logo: "https://upload.wikimedia.org/wikipedia/commons/4/4e/BBVA_2019.svg", Color: "#004481"},
	{Code: "0191", Name: "BNC (Banco Nacional de Crédito)", Logo: "https://seeklogo.com/images/B/bnc-banco-nacional-de-credito-logo-4E3F402C82-seeklogo.com.png", Color: "#00A651"},
	{Code: "0114", Name: "Bancaribe", Logo: "https://upload.wikimedia.org/wikipedia/commons/f/f6/Bancaribe-logo.png", Color: "#0054A6"},
	{Code: "0172", Name: "Bancamiga", Logo: "https://upload.wikimedia.org/wikipedia/commons/1/18/Bancamiga.png", Color: "#0066B3"},
	{Code: "0171", Name: "Banco Activo", Logo: "https://upload.wikimedia.org/wikipedia/commons/e/ea/Banco_Activo.png", Color: "#C6D800"},
	{Code: "0151", Name: "Banco Fondo Común (BFC)", Logo: "https://seeklogo.com/images/B/bfc-banco-fondo-comun-logo-302CE657C6-seeklogo.com.png", Color: "#8DC63F"},
	{Code: "0175", Name: "Banco Bicentenario", Logo: "https://upload.wikimedia.org/wikipedia/commons/5/52/Banco_Bicentenario.png", Color: "#D42E12"},
	{Code: "0128", Name: "Banco Caroní", Logo: "https://upload.wikimedia.org/wikipedia/commons/d/da/Banco-Caron%C3%AD-logo.png", Color: "#0072CE"},
	{Code: "0115", Name: "Banco Exterior", Logo: "https://upload.wikimedia.org/wikipedia/commons/1/18/Banco-Exterior-VE-logo.png", Color: "#00B0AD"},
	{Code: "0163", Name: "Banco del Tesoro", Logo: "https://upload.wikimedia.org/wikipedia/commons/thumb/d/d4/Bt-logo-new.png/410px-Bt-logo-new.png", Color: "#005CAA"},
	{Code: "0137", Name: "Sofitasa", Logo: "https://seeklogo.com/images/B/banco-sofitasa-logo-D49C52E4B8-seeklogo.com.png", Color: "#004A99"},
	{Code: "0174", Name: "Banplus", Logo: "https://seeklogo.com/images/B/banplus-logo-F986A1D2D5-seeklogo.com.png", Color: "#84C341"},
	{Code: "0157", Name: "100% Banco", Logo: "https://upload.wikimedia.org/wikipedia/commons/8/87/100%25_Banco_logo.png", Color: "#FFCC00"},
	{Code: "0169", Name: "Mi Banco", Logo: "", Color: "#0054A6"},
	{Code: "0166", Name: "Banco Agrícola de Venezuela", Logo: "", Color: "#F39200"},
}

// ByCode finds a bank by its national code.
func ByCode(code string) (Bank, bool) {
	for _, b := range Venezuela {
		if b.Code == code {
			return b, true
		}
	}
	return Bank{}, false
}

// ByName finds a bank by its display name.
func ByName(name string) (Bank, bool) {
	for _, b := range Venezuela {
		if b.Name == name {
			return b, true
		}
	}
	return Bank{}, false
}
