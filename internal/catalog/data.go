package catalog

import "ccse-study-service/internal/domain"

// builtinTasks is the shipped CCSE question bank.
var builtinTasks = []domain.Task{
	{
		ID:    1,
		Title: "Tarea 1: Gobierno, legislación y participación ciudadana",
		Questions: []domain.Question{
			{
				ID:          1001,
				Prompt:      "España es...",
				Options:     []string{"una monarquía parlamentaria.", "una república federal.", "una monarquía federal."},
				Answer:      domain.LetterA,
				Explanation: "Art. 1.3 CE: La forma política del Estado español es la monarquía parlamentaria.",
			},
			{
				ID:          1002,
				Prompt:      "La ley fundamental de España se llama...",
				Options:     []string{"Constitución.", "Ley básica.", "Ordenamiento esencial."},
				Answer:      domain.LetterA,
				Explanation: "La Constitución de 1978 es la norma suprema del sistema jurídico.",
			},
			{
				ID:          1003,
				Prompt:      "Según la Constitución española, la soberanía nacional reside en...",
				Options:     []string{"el pueblo español.", "el Gobierno del Estado.", "el Congreso de los Diputados."},
				Answer:      domain.LetterA,
				Explanation: "Art. 1.2 CE: La soberanía nacional reside en el pueblo español.",
			},
			{
				ID:          1006,
				Prompt:      "El castellano o español es lengua oficial...",
				Options:     []string{"en toda España.", "solo donde no hay otras lenguas.", "en toda la península ibérica."},
				Answer:      domain.LetterA,
				Explanation: "El castellano es la lengua española oficial del Estado.",
			},
			{
				ID:          1011,
				Prompt:      "¿Quién es el jefe del Estado en España?",
				Options:     []string{"El presidente del Gobierno.", "El rey.", "El ministro de Economía."},
				Answer:      domain.LetterB,
				Explanation: "El Rey es el Jefe del Estado y mando supremo de las Fuerzas Armadas.",
			},
			{
				ID:          1014,
				Prompt:      "¿Cuál de estos organismos se encarga de interpretar la Constitución?",
				Options:     []string{"El Poder Constitucional.", "El Tribunal Constitucional.", "El Consejo General del Poder Judicial."},
				Answer:      domain.LetterB,
				Explanation: "El Tribunal Constitucional es el intérprete supremo de la Constitución.",
			},
			{
				ID:          1016,
				Prompt:      "¿Cómo se llama la cámara de representación territorial en España?",
				Options:     []string{"Senado.", "Diputación permanente.", "Congreso de los Diputados."},
				Answer:      domain.LetterA,
				Explanation: "El Senado es la Cámara de representación territorial.",
			},
			{
				ID:          1019,
				Prompt:      "¿Cómo se llama la ley más importante de cada comunidad autónoma?",
				Options:     []string{"Estatuto de Autonomía.", "Normativa autonómica.", "Ley de la comunidad."},
				Answer:      domain.LetterA,
				Explanation: "El Estatuto es la norma institucional básica de cada Comunidad Autónoma.",
			},
			{
				ID:          1025,
				Prompt:      "El Congreso de los Diputados y el Senado constituyen el poder...",
				Options:     []string{"ejecutivo.", "legislativo.", "judicial."},
				Answer:      domain.LetterB,
				Explanation: "Las Cortes Generales representan al pueblo y ejercen el poder legislativo.",
			},
			{
				ID:          1027,
				Prompt:      "¿Cuántas comunidades autónomas hay en España?",
				Options:     []string{"8.", "17.", "25."},
				Answer:      domain.LetterB,
				Explanation: "España se organiza territorialmente en 17 Comunidades Autónomas y 2 Ciudades Autónomas.",
			},
			{
				ID:          1048,
				Prompt:      "¿Qué organismo atiende las quejas por mal funcionamiento de la administración?",
				Options:     []string{"Consumo.", "Policía.", "Defensor del Pueblo."},
				Answer:      domain.LetterC,
				Explanation: "El Defensor del Pueblo supervisa la actividad de la Administración para proteger derechos.",
			},
			{
				ID:          1087,
				Prompt:      "¿Qué organismo se encarga de recaudar los impuestos?",
				Options:     []string{"Tribunal de Cuentas.", "Agencia Tributaria.", "CES."},
				Answer:      domain.LetterB,
				Explanation: "La Agencia Tributaria (AEAT) gestiona el sistema tributario estatal.",
			},
		},
	},
	{
		ID:    2,
		Title: "Tarea 2: Derechos y deberes fundamentales",
		Questions: []domain.Question{
			{
				ID:          2001,
				Prompt:      "En España, la Constitución obliga a todos los ciudadanos a practicar una religión.",
				Options:     []string{"Verdadero.", "Falso."},
				Answer:      domain.LetterB,
				Explanation: "Art. 16 CE: Se garantiza la libertad ideológica y religiosa. Ninguna confesión tendrá carácter estatal.",
			},
			{
				ID:          2003,
				Prompt:      "En España, la Constitución prohíbe la tortura y la pena de muerte.",
				Options:     []string{"Verdadero.", "Falso."},
				Answer:      domain.LetterA,
				Explanation: "Art. 15 CE: Queda abolida la pena de muerte y prohibida la tortura.",
			},
			{
				ID:          2007,
				Prompt:      "La Educación Primaria (de 6 a 12 años) es gratuita y obligatoria.",
				Options:     []string{"Verdadero.", "Falso."},
				Answer:      domain.LetterA,
				Explanation: "Art. 27 CE: La enseñanza básica es obligatoria y gratuita.",
			},
			{
				ID:          2019,
				Prompt:      "En España los hombres y las mujeres tienen los mismos derechos.",
				Options:     []string{"Verdadero.", "Falso."},
				Answer:      domain.LetterA,
				Explanation: "Art. 14 CE: Los españoles son iguales ante la ley sin discriminación por sexo.",
			},
			{
				ID:          2026,
				Prompt:      "Los trabajadores tienen derecho a hacer huelga.",
				Options:     []string{"Verdadero.", "Falso."},
				Answer:      domain.LetterA,
				Explanation: "Se reconoce el derecho a la huelga de los trabajadores para la defensa de sus intereses.",
			},
			{
				ID:          2035,
				Prompt:      "Los españoles deben ayudar en los casos de catástrofe o calamidad pública.",
				Options:     []string{"Verdadero.", "Falso."},
				Answer:      domain.LetterA,
				Explanation: "Es un deber constitucional ayudar en situaciones de riesgo grave.",
			},
		},
	},
	{
		ID:    3,
		Title: "Tarea 3: Organización territorial, geografía física y política",
		Questions: []domain.Question{
			{
				ID:          3001,
				Prompt:      "¿Dónde están Cáceres y Badajoz?",
				Options:     []string{"Asturias.", "Andalucía.", "Extremadura."},
				Answer:      domain.LetterC,
				Explanation: "Extremadura está formada por las provincias de Cáceres y Badajoz.",
			},
			{
				ID:          3003,
				Prompt:      "¿Dónde están las islas Baleares?",
				Options:     []string{"Cantábrico.", "Mediterráneo.", "Atlántico."},
				Answer:      domain.LetterB,
				Explanation: "Las Baleares se sitúan en el Mar Mediterráneo.",
			},
			{
				ID:          3004,
				Prompt:      "¿Cómo se llama la extensa llanura situada en el centro de la península ibérica?",
				Options:     []string{"Marisma.", "Cordillera.", "Meseta."},
				Answer:      domain.LetterC,
				Explanation: "La Meseta Central es la llanura elevada que ocupa el centro peninsular.",
			},
			{
				ID:          3020,
				Prompt:      "Canarias tiene un clima...",
				Options:     []string{"mediterráneo.", "oceánico.", "subtropical."},
				Answer:      domain.LetterC,
				Explanation: "Por su latitud cercana a los trópicos, Canarias tiene clima subtropical.",
			},
		},
	},
	{
		ID:    4,
		Title: "Tarea 4: Cultura e historia de España",
		Questions: []domain.Question{
			{
				ID:          4001,
				Prompt:      "Los personajes principales del Quijote son don Quijote y...",
				Options:     []string{"Don Juan.", "Sancho Panza.", "Doña Inés."},
				Answer:      domain.LetterB,
				Explanation: "Sancho Panza es el fiel escudero de don Quijote en la obra de Cervantes.",
			},
			{
				ID:          4010,
				Prompt:      "¿En qué ciudad de España hay una mezquita que es Patrimonio de la Humanidad?",
				Options:     []string{"Santiago.", "Madrid.", "Córdoba."},
				Answer:      domain.LetterC,
				Explanation: "La Mezquita-Catedral de Córdoba es Patrimonio de la Humanidad desde 1984.",
			},
			{
				ID:          4022,
				Prompt:      "¿Qué fiesta se celebra en Pamplona el 7 de julio?",
				Options:     []string{"Sanfermines.", "Fallas.", "Feria de Abril."},
				Answer:      domain.LetterA,
				Explanation: "Los Sanfermines son famosos mundialmente por sus encierros.",
			},
		},
	},
	{
		ID:    5,
		Title: "Tarea 5: Sociedad española",
		Questions: []domain.Question{
			{
				ID:          5001,
				Prompt:      "¿Qué documento deben solicitar los extranjeros para residir?",
				Options:     []string{"DNI.", "TIE.", "Padrón."},
				Answer:      domain.LetterB,
				Explanation: "La TIE (Tarjeta de Identidad de Extranjero) es el documento físico de residencia.",
			},
			{
				ID:          5013,
				Prompt:      "¿Cómo se llama la revisión obligatoria de coches?",
				Options:     []string{"IBI.", "ITV.", "ITE."},
				Answer:      domain.LetterB,
				Explanation: "ITV: Inspección Técnica de Vehículos.",
			},
			{
				ID:          5059,
				Prompt:      "¿Teléfono para víctimas de violencia de género?",
				Options:     []string{"091.", "112.", "016."},
				Answer:      domain.LetterC,
				Explanation: "El 016 es el servicio telefónico de información y asesoramiento jurídico.",
			},
		},
	},
}
